package handler

import (
	"context"
	"time"

	"github.com/promoflow/backend/internal/application/campaign"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultDispatchBudget bounds the wall-clock time of one dispatch batch
// triggered over HTTP.
const DefaultDispatchBudget = 5 * time.Minute

// CampaignHandler handles campaign and scheduled post HTTP requests
type CampaignHandler struct {
	BaseHandler
	campaignService *campaign.CampaignService
	dispatchService *campaign.DispatchService
	dispatchBudget  time.Duration
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(
	campaignService *campaign.CampaignService,
	dispatchService *campaign.DispatchService,
	dispatchBudget time.Duration,
) *CampaignHandler {
	if dispatchBudget <= 0 {
		dispatchBudget = DefaultDispatchBudget
	}
	return &CampaignHandler{
		campaignService: campaignService,
		dispatchService: dispatchService,
		dispatchBudget:  dispatchBudget,
	}
}

// Create creates a campaign together with its scheduled posts
func (h *CampaignHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req campaign.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.campaignService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// List returns a paginated list of the user's campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.campaignService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single campaign
func (h *CampaignHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	result, err := h.campaignService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Pause pauses an active campaign
func (h *CampaignHandler) Pause(c *gin.Context) {
	h.transition(c, h.campaignService.Pause)
}

// Resume reactivates a paused campaign
func (h *CampaignHandler) Resume(c *gin.Context) {
	h.transition(c, h.campaignService.Resume)
}

func (h *CampaignHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, userID, id uuid.UUID) (*campaign.CampaignResponse, error),
) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	result, err := fn(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a campaign and all of its scheduled posts
func (h *CampaignHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListPosts returns the scheduled posts of one campaign
func (h *CampaignHandler) ListPosts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	campaignID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid campaign ID")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if platform := c.Query("platform"); platform != "" {
		filter.Filters["platform"] = platform
	}

	result, err := h.campaignService.ListPosts(c.Request.Context(), userID, campaignID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// DeletePost removes one scheduled post without touching its campaign
func (h *CampaignHandler) DeletePost(c *gin.Context) {
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

	if err := h.campaignService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Dispatch publishes the caller's due posts. Individual publish failures
// are reported in the summary; the request only fails when the due posts
// cannot be selected at all.
func (h *CampaignHandler) Dispatch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.dispatchBudget)
	defer cancel()

	summary, err := h.dispatchService.RunBatch(ctx, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
