package review

import (
	"context"

	"bookbrowser/internal/platform/nytimes"
)

//go:generate mockgen -source=ports.go -destination=mock_client.go -package=review

// Client is the outbound review API.
type Client interface {
	Reviews(ctx context.Context, title, author string) (*nytimes.ReviewsResponse, error)
}
