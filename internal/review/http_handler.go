package review

import (
	"errors"
	"log/slog"
	"net/http"

	"bookbrowser/internal/httpx"
	"bookbrowser/internal/platform/nytimes"
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

// Reviews handles GET /reviews/{title}/{author}
func (h *HTTPHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	title, author := httpx.PathVar(r, "title"), httpx.PathVar(r, "author")
	if title == "" || author == "" {
		h.renderer.RenderError(w, http.StatusBadRequest, "Title and author are required")
		return
	}

	status := http.StatusOK
	result, err := h.service.Fetch(r.Context(), title, author)
	if err != nil {
		status = http.StatusBadGateway
		if errors.Is(err, nytimes.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("reviews unavailable",
			slog.String("request_id", httpx.RequestIDFrom(r)),
			slog.String("title", title),
			slog.Int("status", status),
			slog.String("err", err.Error()),
		)
	}

	if err := h.renderer.Render(w, status, view.PageReviews, result); err != nil {
		h.logger.Error("render reviews", slog.String("err", err.Error()))
		h.renderer.RenderError(w, http.StatusInternalServerError, "Internal server error")
	}
}
