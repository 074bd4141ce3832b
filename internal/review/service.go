package review

import (
	"context"
)

// Service provides review lookups.
type Service struct {
	client Client
}

// NewService creates a new review service.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Fetch looks up reviews for a title and a "|" separated author list. On
// failure the returned Result still names the book, has an empty review list
// and is marked unavailable, so callers can render it next to the error.
func (s *Service) Fetch(ctx context.Context, title, author string) (Result, error) {
	authorQuery := AuthorQuery(author)
	result := Result{
		Title:   title,
		Author:  authorQuery,
		Reviews: []map[string]any{},
	}

	res, err := s.client.Reviews(ctx, title, authorQuery)
	if err != nil {
		result.Unavailable = true
		return result, err
	}

	result.Raw = res.Raw
	result.Reviews = res.Results
	result.Count = res.NumResults
	return result, nil
}
