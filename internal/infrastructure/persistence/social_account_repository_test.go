package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, repo *GormSocialAccountRepository, userID uuid.UUID, platform social.Platform, connectedAt time.Time) *social.SocialAccount {
	t.Helper()
	account, err := social.NewSocialAccount(userID, platform, "Brand Page", "acct-"+uuid.NewString()[:8], "token")
	require.NoError(t, err)
	account.ConnectedAt = connectedAt
	require.NoError(t, repo.Save(context.Background(), account))
	return account
}

func TestGormSocialAccountRepository_FindByUserAndPlatform(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("most recently connected account wins", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSocialAccountRepository(db)

		userID := uuid.New()
		seedAccount(t, repo, userID, social.PlatformFacebook, base)
		newest := seedAccount(t, repo, userID, social.PlatformFacebook, base.Add(48*time.Hour))
		seedAccount(t, repo, userID, social.PlatformFacebook, base.Add(24*time.Hour))

		found, err := repo.FindByUserAndPlatform(context.Background(), userID, social.PlatformFacebook)
		require.NoError(t, err)
		assert.Equal(t, newest.ID, found.ID)
	})

	t.Run("revoked accounts are skipped", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSocialAccountRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		older := seedAccount(t, repo, userID, social.PlatformTwitter, base)
		revoked := seedAccount(t, repo, userID, social.PlatformTwitter, base.Add(24*time.Hour))
		revoked.Revoke()
		require.NoError(t, repo.Save(ctx, revoked))

		found, err := repo.FindByUserAndPlatform(ctx, userID, social.PlatformTwitter)
		require.NoError(t, err)
		assert.Equal(t, older.ID, found.ID)
	})

	t.Run("no usable account returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSocialAccountRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		seedAccount(t, repo, userID, social.PlatformFacebook, base)
		seedAccount(t, repo, uuid.New(), social.PlatformInstagram, base)

		_, err := repo.FindByUserAndPlatform(ctx, userID, social.PlatformInstagram)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSocialAccountRepository_FindAllForUser(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	db := setupTestDB(t)
	repo := NewGormSocialAccountRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedAccount(t, repo, userID, social.PlatformFacebook, base)
	seedAccount(t, repo, userID, social.PlatformLinkedIn, base.Add(time.Hour))
	revoked := seedAccount(t, repo, userID, social.PlatformTwitter, base.Add(2*time.Hour))
	revoked.Revoke()
	require.NoError(t, repo.Save(ctx, revoked))
	seedAccount(t, repo, uuid.New(), social.PlatformFacebook, base)

	accounts, err := repo.FindAllForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, social.PlatformLinkedIn, accounts[0].Platform)
	assert.Equal(t, social.PlatformFacebook, accounts[1].Platform)
}

func TestGormSocialAccountRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSocialAccountRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	account := seedAccount(t, repo, userID, social.PlatformFacebook, time.Now())

	err := repo.Delete(ctx, uuid.New(), account.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, userID, account.ID))
	_, err = repo.FindByID(ctx, userID, account.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
