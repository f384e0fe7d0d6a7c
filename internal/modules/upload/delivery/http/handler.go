package http

import (
	"fmt"
	"net/http"

	"anoa.com/collegejournal/pkg/apperror"
	"anoa.com/collegejournal/pkg/response"
	"anoa.com/collegejournal/pkg/storage"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadHandler struct {
	storage storage.ImageStorage
}

func NewUploadHandler(store storage.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: store}
}

// Upload accepts a multipart "file" field and returns the hosted URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		response.Error(c, fmt.Errorf("image storage is not configured: %w", apperror.ErrInternal))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, fmt.Errorf("missing file field: %w", apperror.ErrInvalidInput))
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.Error(c, fmt.Errorf("file exceeds 10MB limit: %w", apperror.ErrBadRequest))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	url, err := h.storage.UploadImage(c.Request.Context(), file, "articles", fileHeader.Filename)
	if err != nil {
		response.Error(c, fmt.Errorf("failed to store image: %w", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
