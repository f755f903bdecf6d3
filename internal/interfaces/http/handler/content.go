package handler

import (
	"github.com/promoflow/backend/internal/application/content"
	"github.com/gin-gonic/gin"
)

// ContentHandler handles content generation HTTP requests
type ContentHandler struct {
	BaseHandler
	contentService *content.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *content.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GenerateForPost rewrites one scheduled post with freshly generated copy
func (h *ContentHandler) GenerateForPost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.contentService.GenerateForPost(c.Request.Context(), userID, postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}
