package social

import (
	"strings"
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SocialAccount is a user's OAuth-linked connection to one platform.
// Accounts are created by the OAuth callback flow and are read-only from the
// dispatcher's point of view.
type SocialAccount struct {
	shared.OwnedAggregateRoot
	Platform     Platform   `gorm:"type:varchar(20);not null;index:idx_social_account_user_platform,priority:2"`
	AccountName  string     `gorm:"type:varchar(200);not null"`
	AccountID    string     `gorm:"type:varchar(200);not null"` // platform-side identifier
	AccessToken  string     `gorm:"type:text;not null"`
	RefreshToken *string    `gorm:"type:text"`
	ConnectedAt  time.Time  `gorm:"not null"`
	RevokedAt    *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (SocialAccount) TableName() string {
	return "social_accounts"
}

// NewSocialAccount creates a connected account record
func NewSocialAccount(userID uuid.UUID, platform Platform, accountName, accountID, accessToken string) (*SocialAccount, error) {
	if !platform.IsValid() {
		return nil, ErrPlatformNotSupported
	}
	if strings.TrimSpace(accountID) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Platform account ID is required")
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Access token is required")
	}

	return &SocialAccount{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Platform:           platform,
		AccountName:        strings.TrimSpace(accountName),
		AccountID:          accountID,
		AccessToken:        accessToken,
		ConnectedAt:        time.Now(),
	}, nil
}

// SetRefreshToken attaches an optional refresh token
func (a *SocialAccount) SetRefreshToken(token string) {
	if token == "" {
		a.RefreshToken = nil
		return
	}
	a.RefreshToken = &token
}

// Revoke marks the account as disconnected
func (a *SocialAccount) Revoke() {
	now := time.Now()
	a.RevokedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
}

// IsRevoked returns true if the account has been disconnected
func (a *SocialAccount) IsRevoked() bool {
	return a.RevokedAt != nil
}
