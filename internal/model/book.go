package model

import (
	"context"

	"github.com/google/uuid"
)

// BookStore reads catalog entries.
type BookStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Book, error)
}

// Book is a catalog entry as listed to readers.
type Book struct {
	ID         uuid.UUID
	Title      string
	Author     string
	CategoryID *uuid.UUID
	CoverKey   string
	CoverURL   string
	Rating     float64
	IsPremium  bool
}
