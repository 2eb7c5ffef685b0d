package postgres

import (
	"context"
	"fmt"

	"localGuide/domain"

	"gorm.io/gorm"
)

type InterestRepository struct {
	DB *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{
		DB: db,
	}
}

func (r *InterestRepository) FindAll(ctx context.Context) ([]domain.Interest, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interests []domain.Interest
	err := r.DB.WithContext(ctx).
		Preload("SubInterests", func(db *gorm.DB) *gorm.DB {
			return db.Order("label ASC")
		}).
		Order("name ASC").
		Find(&interests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interests: %w", err)
	}

	return interests, nil
}
