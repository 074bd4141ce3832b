package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the read-only contract for book storage.
type Repository interface {
	CountByPrefix(ctx context.Context, prefix string) (int, error)
	ListByPrefix(ctx context.Context, prefix string, limit, offset int) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
}
