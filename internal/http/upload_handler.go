package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"carecircle/internal/media"
)

// maxUploadBytes bounds a single multipart upload.
const maxUploadBytes = 32 << 20

// UploadHandler accepts an image, normalizes it to JPEG, and stores it under
// the public upload path.
type UploadHandler struct {
	store  *media.Store
	logger *zap.Logger
}

func NewUploadHandler(store *media.Store, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// POST /upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Missing file field.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeDetail(w, http.StatusUnsupportedMediaType, "Only image files are allowed.")
		return
	}

	data, err := media.NormalizeJPEG(file)
	if err != nil {
		var decodeErr *media.DecodeError
		if errors.As(err, &decodeErr) {
			writeDetail(w, http.StatusBadRequest, decodeErr.Error())
			return
		}
		h.logger.Error("normalize upload failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	url, err := h.store.Save(data)
	if err != nil {
		h.logger.Error("store upload failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
