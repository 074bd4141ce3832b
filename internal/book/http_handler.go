package book

import (
	"errors"
	"log/slog"
	"net/http"

	"bookbrowser/internal/httpx"
	"bookbrowser/internal/view"
)

type HTTPHandler struct {
	service  *Service
	renderer *view.Renderer
	logger   *slog.Logger
}

func NewHTTPHandler(service *Service, renderer *view.Renderer, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, renderer: renderer, logger: logger}
}

// Index handles GET /
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageIndex, view.IndexData{Letters: view.Letters()})
}

// ListByLetter handles GET /{letter}?offset=N
func (h *HTTPHandler) ListByLetter(w http.ResponseWriter, r *http.Request) {
	letter := httpx.PathVar(r, "letter")
	if letter == "" {
		http.NotFound(w, r)
		return
	}
	offset := ParseOffset(r.URL.Query().Get("offset"))

	listing, err := h.service.Listing(r.Context(), letter, offset)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.logger.Debug("listing",
		slog.String("letter", letter),
		slog.Int("total", listing.Window.Total),
		slog.Int("page", listing.Window.PageNumber),
		slog.Int("books", len(listing.Books)),
	)
	h.render(w, r, http.StatusOK, view.PageLetter, listing)
}

// Info handles GET /info/{id}. HTML and JSON clients get the same page;
// any other Accept gets 406.
func (h *HTTPHandler) Info(w http.ResponseWriter, r *http.Request) {
	format := httpx.Negotiate(r)
	if format == httpx.FormatUnacceptable {
		httpx.NotAcceptable(w)
		return
	}

	id := httpx.PathVar(r, "id")
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if format == httpx.FormatJSON {
				httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
				return
			}
			h.renderer.RenderError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, view.PageInfo, detail)
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.internalError(w, r, err)
	}
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		slog.String("request_id", httpx.RequestIDFrom(r)),
		slog.String("path", r.URL.Path),
		slog.String("err", err.Error()),
	)
	httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
