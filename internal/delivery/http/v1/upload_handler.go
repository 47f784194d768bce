package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type UploadHandler struct {
	uploadUC      *usecase.UploadUsecase
	maxUploadSize int64
}

func NewUploadHandler(uc *usecase.UploadUsecase, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		uploadUC:      uc,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

// POST /api/v1/admin/uploads (multipart field "file")
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Upload: multipart parse failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	url, err := h.uploadUC.UploadProductImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, map[string]string{"url": url})
}

// DELETE /api/v1/admin/uploads?url=
func (h *UploadHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.uploadUC.DeleteImage(r.Context(), r.URL.Query().Get("url")); err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "File deleted")
}
