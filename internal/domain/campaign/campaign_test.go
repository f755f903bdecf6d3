package campaign

import (
	"testing"
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaign(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	t.Run("creates active campaign", func(t *testing.T) {
		c, err := NewCampaign(userID, "Spring Launch", []social.Platform{social.PlatformFacebook, social.PlatformTwitter}, start, end, "09:30")
		require.NoError(t, err)
		assert.Equal(t, CampaignStatusActive, c.Status)
		assert.Equal(t, userID, c.UserID)
		assert.Equal(t, ScheduleTypeDaily, c.Schedule)
		assert.Equal(t, 7, c.Days())
		assert.Zero(t, c.PostedCount)
		assert.Zero(t, c.FailedCount)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCampaign(userID, "  ", []social.Platform{social.PlatformFacebook}, start, end, "09:30")
		require.Error(t, err)
	})

	t.Run("rejects empty platform list", func(t *testing.T) {
		_, err := NewCampaign(userID, "Spring Launch", nil, start, end, "09:30")
		require.Error(t, err)
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		_, err := NewCampaign(userID, "Spring Launch", []social.Platform{"myspace"}, start, end, "09:30")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PLATFORM", domainErr.Code)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewCampaign(userID, "Spring Launch", []social.Platform{social.PlatformFacebook}, end, start, "09:30")
		require.Error(t, err)
	})

	t.Run("rejects malformed post time", func(t *testing.T) {
		for _, bad := range []string{"25:00", "9am", "09:61", ""} {
			_, err := NewCampaign(userID, "Spring Launch", []social.Platform{social.PlatformFacebook}, start, end, bad)
			assert.Error(t, err, "post time %q should be rejected", bad)
		}
	})
}

func TestCampaignPauseResume(t *testing.T) {
	c := newTestCampaign(t)

	require.NoError(t, c.Pause())
	assert.Equal(t, CampaignStatusPaused, c.Status)

	assert.ErrorIs(t, c.Pause(), shared.ErrInvalidState)

	require.NoError(t, c.Resume())
	assert.Equal(t, CampaignStatusActive, c.Status)

	assert.ErrorIs(t, c.Resume(), shared.ErrInvalidState)
}

func TestCampaignIsResolved(t *testing.T) {
	c := newTestCampaign(t)
	assert.False(t, c.IsResolved(), "campaign without planned posts is never resolved")

	c.TotalPosts = 4
	c.PostedCount = 3
	assert.False(t, c.IsResolved())

	c.FailedCount = 1
	assert.True(t, c.IsResolved(), "posted plus failed covering every post resolves the campaign")
}

func newTestCampaign(t *testing.T) *Campaign {
	t.Helper()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c, err := NewCampaign(uuid.New(), "Spring Launch", []social.Platform{social.PlatformFacebook}, start, start.AddDate(0, 0, 3), "09:30")
	require.NoError(t, err)
	return c
}
