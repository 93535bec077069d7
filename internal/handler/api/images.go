package api

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/lvargas/dulceria/internal/handler"
	"github.com/lvargas/dulceria/internal/storage"
)

// ImageHandler serves product image blobs.
type ImageHandler struct {
	blobs  storage.Storage
	logger *slog.Logger
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(blobs storage.Storage, logger *slog.Logger) *ImageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageHandler{blobs: blobs, logger: logger}
}

// Get handles GET /api/images/{key...}
// Keys are immutable (a new upload gets a new key), so responses are
// cacheable for a year.
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := h.blobs.Get(r.Context(), key)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	defer blob.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	if _, err := io.Copy(w, blob); err != nil {
		h.logger.Error("failed to stream image", "key", key, "error", err)
	}
}
