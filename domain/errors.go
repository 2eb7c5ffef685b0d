package domain

import "errors"

var (
	ErrBusinessNotFound     = errors.New("business not found")
	ErrInvalidCursor        = errors.New("invalid cursor")
	ErrProcedureUnavailable = errors.New("personalization procedure unavailable")
)
