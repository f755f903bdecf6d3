package social

import (
	"time"

	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
)

// ConnectAccountRequest records an account the OAuth flow has already
// exchanged tokens for. The code exchange itself happens outside this API.
type ConnectAccountRequest struct {
	Platform     string `json:"platform" binding:"required"`
	AccountName  string `json:"account_name"`
	AccountID    string `json:"account_id" binding:"required"`
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token"`
}

// SocialAccountResponse represents a connected account in API responses.
// Tokens never leave the service.
type SocialAccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Platform    string    `json:"platform"`
	AccountName string    `json:"account_name"`
	AccountID   string    `json:"account_id"`
	ConnectedAt time.Time `json:"connected_at"`
}

// ToSocialAccountResponse converts a domain account to a response DTO
func ToSocialAccountResponse(account *social.SocialAccount) *SocialAccountResponse {
	return &SocialAccountResponse{
		ID:          account.ID,
		Platform:    account.Platform.String(),
		AccountName: account.AccountName,
		AccountID:   account.AccountID,
		ConnectedAt: account.ConnectedAt,
	}
}
