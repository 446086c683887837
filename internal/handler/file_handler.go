package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// FileHandler streams stored uploads. Going through the storage service keeps
// photos reachable whether they live on local disk or in the object store.
type FileHandler struct {
	storage *service.StorageService
}

// NewFileHandler creates the file handler.
func NewFileHandler(storage *service.StorageService) *FileHandler {
	return &FileHandler{storage: storage}
}

// Download streams a stored file by name.
// GET /uploads/:filename
func (h *FileHandler) Download(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == "/" {
		BadRequest(c, "Filename is required")
		return
	}

	rc, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		NotFound(c, "File not found")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}
