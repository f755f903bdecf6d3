package handler

import (
	"errors"
	"net/http"

	"github.com/promoflow/backend/internal/application/social"
	domainsocial "github.com/promoflow/backend/internal/domain/social"
	"github.com/gin-gonic/gin"
)

// SocialAccountHandler handles social account connection HTTP requests
type SocialAccountHandler struct {
	BaseHandler
	accountService *social.AccountService
}

// NewSocialAccountHandler creates a new social account handler
func NewSocialAccountHandler(accountService *social.AccountService) *SocialAccountHandler {
	return &SocialAccountHandler{accountService: accountService}
}

// Connect records a freshly authorized platform account
func (h *SocialAccountHandler) Connect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req social.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Connect(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, domainsocial.ErrPlatformNotSupported) {
			h.Error(c, http.StatusUnprocessableEntity, "INVALID_PLATFORM", "Unsupported platform: "+req.Platform)
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List returns the user's connected accounts
func (h *SocialAccountHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accounts, err := h.accountService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// Disconnect revokes a connected account
func (h *SocialAccountHandler) Disconnect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.Disconnect(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
