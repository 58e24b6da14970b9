package admin

import (
	"fmt"
	"net/http"
	"path"

	"github.com/google/uuid"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
	"github.com/denizgunduz/pazar/internal/storage"
)

// maxUploadSize bounds a single image upload.
const maxUploadSize = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler stores product and category images.
type UploadHandler struct {
	store storage.Storage
}

func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /api/admin/uploads
//
// Accepts a multipart form with a "file" field and returns the public URL
// of the stored image. Keys are random so uploads never collide.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.upload", "File is missing or too large"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.upload", "Form field 'file' is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		handler.ErrorResponse(w, r, domain.Invalid("admin.upload", fmt.Sprintf("Unsupported file type: %s", contentType)))
		return
	}

	key := path.Join("images", uuid.NewString()+ext)
	url, err := h.store.Put(r.Context(), key, file, contentType)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Internal(err, "admin.upload", "Failed to store file"))
		return
	}

	handler.JSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": url,
	})
}

// Delete handles DELETE /api/admin/uploads/{key...}
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		handler.ErrorResponse(w, r, domain.Invalid("admin.upload", "File key is required"))
		return
	}
	if err := h.store.Delete(r.Context(), key); err != nil {
		handler.ErrorResponse(w, r, domain.Internal(err, "admin.upload", "Failed to delete file"))
		return
	}
	handler.NoContent(w)
}
