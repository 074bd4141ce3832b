package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Listing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("first page", func(t *testing.T) {
		books := []Book{{ID: "1", Title: "Anna Karenina"}, {ID: "2", Title: "Atonement"}}
		gomock.InOrder(
			mockRepo.EXPECT().CountByPrefix(ctx, "A").Return(25, nil),
			mockRepo.EXPECT().ListByPrefix(ctx, "A", PageSize, 0).Return(books, nil),
		)

		listing, err := service.Listing(ctx, "A", 0)
		require.NoError(t, err)
		assert.Equal(t, books, listing.Books)
		assert.Equal(t, 3, listing.Window.TotalPages)
		assert.True(t, listing.Window.FirstPage)
	})

	t.Run("past the end yields an empty listing", func(t *testing.T) {
		mockRepo.EXPECT().CountByPrefix(ctx, "A").Return(25, nil)
		mockRepo.EXPECT().ListByPrefix(ctx, "A", PageSize, 30).Return(nil, nil)

		listing, err := service.Listing(ctx, "A", 30)
		require.NoError(t, err)
		assert.NotNil(t, listing.Books)
		assert.Empty(t, listing.Books)
		assert.True(t, listing.Window.LastPage)
	})

	t.Run("count error", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		mockRepo.EXPECT().CountByPrefix(ctx, "B").Return(0, dbErr)

		_, err := service.Listing(ctx, "B", 0)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("list error", func(t *testing.T) {
		dbErr := errors.New("timeout")
		mockRepo.EXPECT().CountByPrefix(ctx, "B").Return(3, nil)
		mockRepo.EXPECT().ListByPrefix(ctx, "B", PageSize, 0).Return(nil, dbErr)

		_, err := service.Listing(ctx, "B", 0)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_Detail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, "42").Return(Book{ID: "42", Genres: "Fiction|Drama|History"}, nil)

		detail, err := service.Detail(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "42", detail.Book.ID)
		assert.Equal(t, "Fiction, Drama, History", detail.Genres)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, "unknown-id").Return(Book{}, ErrNotFound)

		_, err := service.Detail(ctx, "unknown-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
