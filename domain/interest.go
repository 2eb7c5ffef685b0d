package domain

import (
	"time"
)

// CREATE TABLE public.interests (
//     id         TEXT PRIMARY KEY,
//     name       TEXT NOT NULL,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );
//
// CREATE TABLE public.sub_interests (
//     id          TEXT PRIMARY KEY,
//     interest_id TEXT REFERENCES interests(id),
//     label       TEXT NOT NULL
// );

type Interest struct {
	ID           string        `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name         string        `gorm:"column:name;type:text;not null" json:"name"`
	CreatedAt    time.Time     `gorm:"column:created_at" json:"-"`
	SubInterests []SubInterest `gorm:"foreignKey:InterestID;references:ID" json:"sub_interests"`
}

func (Interest) TableName() string {
	return "interests"
}

type SubInterest struct {
	ID         string `gorm:"column:id;type:text;primaryKey" json:"id"`
	InterestID string `gorm:"column:interest_id;type:text" json:"interest_id"`
	Label      string `gorm:"column:label;type:text;not null" json:"label"`
}

func (SubInterest) TableName() string {
	return "sub_interests"
}
