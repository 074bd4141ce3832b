package book_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookbrowser/internal/book"
	"bookbrowser/internal/testutil"
	"bookbrowser/internal/view"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, repo book.Repository) *book.HTTPHandler {
	renderer, err := view.New()
	require.NoError(t, err)
	return book.NewHTTPHandler(book.NewService(repo), renderer, testutil.DiscardLogger())
}

func TestHTTPHandler_Index(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := newTestHandler(t, book.NewMockRepository(ctrl))

	w := httptest.NewRecorder()
	handler.Index(w, testutil.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 36, doc.Find("ul.letters a").Length())
}

func TestHTTPHandler_ListByLetter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	handler := newTestHandler(t, mockRepo)

	t.Run("first page", func(t *testing.T) {
		mockRepo.EXPECT().CountByPrefix(gomock.Any(), "T").Return(25, nil)
		mockRepo.EXPECT().ListByPrefix(gomock.Any(), "T", 10, 0).Return(testutil.TestBooks("T", 10), nil)

		w := httptest.NewRecorder()
		handler.ListByLetter(w, testutil.NewRequest(http.MethodGet, "/T", map[string]string{"letter": "T"}))

		assert.Equal(t, http.StatusOK, w.Code)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)

		assert.Equal(t, 10, doc.Find("li.book").Length())
		assert.Equal(t, "Page 1 of 3", doc.Find("span.page").Text())
		assert.Equal(t, 0, doc.Find("a.prev").Length())
		next, ok := doc.Find("a.next").Attr("href")
		require.True(t, ok)
		assert.Equal(t, "/T?offset=10", next)
		first, _ := doc.Find("li.book a").First().Attr("href")
		assert.Equal(t, "/info/T-a", first)
	})

	t.Run("last page", func(t *testing.T) {
		mockRepo.EXPECT().CountByPrefix(gomock.Any(), "T").Return(25, nil)
		mockRepo.EXPECT().ListByPrefix(gomock.Any(), "T", 10, 20).Return(testutil.TestBooks("T", 5), nil)

		w := httptest.NewRecorder()
		handler.ListByLetter(w, testutil.NewRequest(http.MethodGet, "/T?offset=20", map[string]string{"letter": "T"}))

		assert.Equal(t, http.StatusOK, w.Code)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)

		assert.Equal(t, 5, doc.Find("li.book").Length())
		assert.Equal(t, "Page 3 of 3", doc.Find("span.page").Text())
		assert.Equal(t, 0, doc.Find("a.next").Length())
		prev, _ := doc.Find("a.prev").Attr("href")
		assert.Equal(t, "/T?offset=10", prev)
	})

	t.Run("past the end renders empty listing", func(t *testing.T) {
		mockRepo.EXPECT().CountByPrefix(gomock.Any(), "T").Return(25, nil)
		mockRepo.EXPECT().ListByPrefix(gomock.Any(), "T", 10, 30).Return(nil, nil)

		w := httptest.NewRecorder()
		handler.ListByLetter(w, testutil.NewRequest(http.MethodGet, "/T?offset=30", map[string]string{"letter": "T"}))

		assert.Equal(t, http.StatusOK, w.Code)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Find("li.book").Length())
		assert.Equal(t, 1, doc.Find("p.empty").Length())
	})

	t.Run("non-numeric offset falls back to zero", func(t *testing.T) {
		mockRepo.EXPECT().CountByPrefix(gomock.Any(), "T").Return(3, nil)
		mockRepo.EXPECT().ListByPrefix(gomock.Any(), "T", 10, 0).Return(testutil.TestBooks("T", 3), nil)

		w := httptest.NewRecorder()
		handler.ListByLetter(w, testutil.NewRequest(http.MethodGet, "/T?offset=abc", map[string]string{"letter": "T"}))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("database error", func(t *testing.T) {
		mockRepo.EXPECT().CountByPrefix(gomock.Any(), "T").Return(0, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.ListByLetter(w, testutil.NewRequest(http.MethodGet, "/T", map[string]string{"letter": "T"}))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusInternalServerError, res.Code)
		assert.Equal(t, false, res.Body["success"])
	})
}

func TestHTTPHandler_Info(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	handler := newTestHandler(t, mockRepo)

	vars := map[string]string{"id": testutil.TestBook.ID}

	t.Run("html", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)

		w := httptest.NewRecorder()
		handler.Info(w, testutil.NewRequestWithAccept(http.MethodGet, "/info/2767052", vars, "text/html"))

		assert.Equal(t, http.StatusOK, w.Code)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		assert.Equal(t, "The Hunger Games", doc.Find("h1.title").Text())
		assert.Equal(t, "Young Adult, Fiction, Science Fiction, Dystopia", doc.Find("dd.genres").Text())
		href, _ := doc.Find("a.reviews").Attr("href")
		assert.Equal(t, "/reviews/The%20Hunger%20Games/Suzanne%20Collins", href)
	})

	t.Run("json accept gets the same page as html", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil).Times(2)

		htmlW := httptest.NewRecorder()
		handler.Info(htmlW, testutil.NewRequestWithAccept(http.MethodGet, "/info/2767052", vars, "text/html"))
		jsonW := httptest.NewRecorder()
		handler.Info(jsonW, testutil.NewRequestWithAccept(http.MethodGet, "/info/2767052", vars, "application/json"))

		assert.Equal(t, http.StatusOK, jsonW.Code)
		assert.Equal(t, htmlW.Header().Get("Content-Type"), jsonW.Header().Get("Content-Type"))
		assert.Equal(t, htmlW.Body.String(), jsonW.Body.String())

		doc, err := goquery.NewDocumentFromReader(jsonW.Body)
		require.NoError(t, err)
		assert.Equal(t, "The Hunger Games", doc.Find("h1.title").Text())
	})

	t.Run("not acceptable", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Info(w, testutil.NewRequestWithAccept(http.MethodGet, "/info/2767052", vars, "image/png"))

		assert.Equal(t, http.StatusNotAcceptable, w.Code)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "unknown-id").Return(book.Book{}, book.ErrNotFound)

		w := httptest.NewRecorder()
		handler.Info(w, testutil.NewRequest(http.MethodGet, "/info/unknown-id", map[string]string{"id": "unknown-id"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		assert.Equal(t, "Book not found", doc.Find("p.message").Text())
	})

	t.Run("unknown id is 404 as json", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "unknown-id").Return(book.Book{}, book.ErrNotFound)

		w := httptest.NewRecorder()
		handler.Info(w, testutil.NewRequestWithAccept(http.MethodGet, "/info/unknown-id", map[string]string{"id": "unknown-id"}, "application/json"))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "NOT_FOUND", res.Body["error"].(map[string]interface{})["code"])
	})

	t.Run("database error", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(book.Book{}, errors.New("db error"))

		w := httptest.NewRecorder()
		handler.Info(w, testutil.NewRequest(http.MethodGet, "/info/2767052", vars))

		testutil.AssertResponseCode(t, w.Code, http.StatusInternalServerError)
	})
}
