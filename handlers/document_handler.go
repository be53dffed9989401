package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"scholarspace-backend/errs"
	"scholarspace-backend/service"

	"github.com/gin-gonic/gin"
)

// DocumentHandler handles HTTP requests for paper document attachments
type DocumentHandler struct {
	paperService *service.PaperService
	maxFileSize  int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(paperService *service.PaperService) *DocumentHandler {
	return &DocumentHandler{
		paperService: paperService,
		maxFileSize:  25 * 1024 * 1024, // 25MB
	}
}

// AttachDocument handles POST /api/papers/:id/document
func (h *DocumentHandler) AttachDocument(c *gin.Context) {
	id, ok := paperID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": "File exceeds the maximum allowed size",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	result, err := h.paperService.AttachDocument(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, errs.ErrPaperNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Paper not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ATTACH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Paper,
	})
}

// GetDocument handles GET /api/papers/:id/document
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := paperID(c)
	if !ok {
		return
	}

	rc, paper, err := h.paperService.OpenDocument(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPaperNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Paper not found",
				},
			})
		case errors.Is(err, errs.ErrNoDocument):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_DOCUMENT",
					"message": "Paper has no document attached",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DOWNLOAD_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}
	defer rc.Close()

	contentType := "application/octet-stream"
	if filepath.Ext(*paper.DocumentPath) == ".pdf" {
		contentType = "application/pdf"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
