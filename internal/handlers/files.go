package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"printshop-backend/internal/services"
)

type FilesHandler struct {
	orders *services.OrderService
	logger *slog.Logger
}

func NewFilesHandler(orders *services.OrderService, logger *slog.Logger) *FilesHandler {
	return &FilesHandler{
		orders: orders,
		logger: logger,
	}
}

// Download godoc
// @Summary     Download an uploaded file
// @Description Streams a stored upload by its generated storage filename. The response carries the original filename when the file belongs to an order.
// @Tags        files
// @Produce     octet-stream
// @Param       filename path string true "Storage filename"
// @Success     200 {file} file
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /files/{filename} [get]
func (h *FilesHandler) Download(c *gin.Context) {
	name := c.Param("filename")

	rc, meta, err := h.orders.OpenFile(c.Request.Context(), name)
	if errors.Is(err, services.ErrFileNotFound) {
		notFound(c, "File not found")
		return
	}
	if err != nil {
		internalError(c, h.logger, "failed to open file", err)
		return
	}
	defer rc.Close()

	contentType := "application/octet-stream"
	size := int64(-1)
	downloadName := name
	if meta != nil {
		if meta.MimeType != "" {
			contentType = meta.MimeType
		}
		size = meta.FileSize
		downloadName = meta.OriginalName
	}

	headers := map[string]string{
		"Content-Disposition": mime.FormatMediaType("inline", map[string]string{"filename": downloadName}),
	}
	c.DataFromReader(http.StatusOK, size, contentType, rc, headers)
}
