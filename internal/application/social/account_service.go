package social

import (
	"context"

	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService manages the user's connected social accounts
type AccountService struct {
	accounts social.SocialAccountRepository
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(accounts social.SocialAccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, logger: logger}
}

// Connect records a freshly authorized account. Existing connections for the
// same platform stay in place; the dispatcher always picks the most recently
// connected one.
func (s *AccountService) Connect(ctx context.Context, userID uuid.UUID, req ConnectAccountRequest) (*SocialAccountResponse, error) {
	account, err := social.NewSocialAccount(userID, social.Platform(req.Platform), req.AccountName, req.AccountID, req.AccessToken)
	if err != nil {
		return nil, err
	}
	account.SetRefreshToken(req.RefreshToken)

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("social account connected",
		zap.String("user_id", userID.String()),
		zap.String("platform", req.Platform))
	return ToSocialAccountResponse(account), nil
}

// List returns the user's connected accounts
func (s *AccountService) List(ctx context.Context, userID uuid.UUID) ([]*SocialAccountResponse, error) {
	accounts, err := s.accounts.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*SocialAccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToSocialAccountResponse(&accounts[i]))
	}
	return responses, nil
}

// Disconnect revokes an account. The row stays for audit; revoked accounts
// are invisible to listing and to the dispatcher's account lookup.
func (s *AccountService) Disconnect(ctx context.Context, userID, id uuid.UUID) error {
	account, err := s.accounts.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if account.IsRevoked() {
		return nil
	}

	account.Revoke()
	if err := s.accounts.Save(ctx, account); err != nil {
		return err
	}

	s.logger.Info("social account disconnected",
		zap.String("user_id", userID.String()),
		zap.String("platform", account.Platform.String()))
	return nil
}
