package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"scholarspace-backend/errs"
	"scholarspace-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaperHandler handles HTTP requests for papers
type PaperHandler struct {
	paperService *service.PaperService
}

// NewPaperHandler creates a new paper handler
func NewPaperHandler(paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// UploadPaperRequest represents the request body for uploading a paper
type UploadPaperRequest struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Year     int      `json:"year"`
	Tags     []string `json:"tags"`
	Abstract string   `json:"abstract"`
}

// UploadPaper handles POST /api/papers/upload
func (h *PaperHandler) UploadPaper(c *gin.Context) {
	var req UploadPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	serviceReq := service.UploadPaperRequest{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Tags:     req.Tags,
		Abstract: req.Abstract,
	}

	result, err := h.paperService.Upload(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
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

// ListPapers handles GET /api/papers
func (h *PaperHandler) ListPapers(c *gin.Context) {
	result, err := h.paperService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Papers,
	})
}

// FilterPapers handles GET /api/papers/filter
func (h *PaperHandler) FilterPapers(c *gin.Context) {
	var req service.FilterPapersRequest

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_YEAR",
					"message": "year must be an integer",
				},
			})
			return
		}
		req.Year = &year
	}
	req.Tag = c.Query("tag")
	req.Author = c.Query("author")

	result, err := h.paperService.Filter(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILTER_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Papers,
	})
}

// GetPaper handles GET /api/papers/:id
func (h *PaperHandler) GetPaper(c *gin.Context) {
	id, ok := paperID(c)
	if !ok {
		return
	}

	result, err := h.paperService.Get(c.Request.Context(), id)
	if err != nil {
		h.paperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Paper,
	})
}

// ToggleFavorite handles POST /api/papers/:id/favorite
func (h *PaperHandler) ToggleFavorite(c *gin.Context) {
	id, ok := paperID(c)
	if !ok {
		return
	}

	result, err := h.paperService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		h.paperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Paper,
	})
}

// GetStats handles GET /api/papers/analytics/stats
func (h *PaperHandler) GetStats(c *gin.Context) {
	result, err := h.paperService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STATS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analytics,
	})
}

// paperID parses the :id path parameter, writing the error response itself
// when the id is not a valid UUID.
func paperID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid paper ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// paperError maps service errors for single-paper operations
func (h *PaperHandler) paperError(c *gin.Context, err error) {
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
			"code":    "INTERNAL_ERROR",
			"message": err.Error(),
		},
	})
}
