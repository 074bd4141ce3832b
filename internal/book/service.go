package book

import (
	"context"
	"fmt"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Listing returns one page of books whose title starts with letter.
func (s *Service) Listing(ctx context.Context, letter string, offset int) (Listing, error) {
	total, err := s.repo.CountByPrefix(ctx, letter)
	if err != nil {
		return Listing{}, fmt.Errorf("count books %q: %w", letter, err)
	}

	window := ComputeWindow(letter, offset, PageSize, total)

	books, err := s.repo.ListByPrefix(ctx, letter, window.Limit, window.Offset)
	if err != nil {
		return Listing{}, fmt.Errorf("list books %q: %w", letter, err)
	}
	if books == nil {
		books = []Book{}
	}

	return Listing{Window: window, Books: books}, nil
}

// Detail returns a book by id with its genres prepared for display.
func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Book: b, Genres: b.GenreList()}, nil
}
