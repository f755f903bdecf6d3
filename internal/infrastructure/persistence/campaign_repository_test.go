package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCampaignRepository creates a GormCampaignRepository with a mocked SQL connection
func newMockCampaignRepository(t *testing.T) (*GormCampaignRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCampaignRepository(gormDB), mock, mockDB
}

func TestGormCampaignRepository_IncrementPostedCount(t *testing.T) {
	t.Run("issues a single relative UPDATE", func(t *testing.T) {
		repo, mock, mockDB := newMockCampaignRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE "campaigns" SET "posted_count"=posted_count \+ 1 WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementPostedCount(context.Background(), id)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockCampaignRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE "campaigns" SET "posted_count"=posted_count \+ 1 WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementPostedCount(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCampaignRepository_IncrementFailedCount(t *testing.T) {
	t.Run("issues a single relative UPDATE", func(t *testing.T) {
		repo, mock, mockDB := newMockCampaignRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE "campaigns" SET "failed_count"=failed_count \+ 1 WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementFailedCount(context.Background(), id)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCampaignRepository_SQLite(t *testing.T) {
	newCampaign := func(t *testing.T, userID uuid.UUID, name string) *campaign.Campaign {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 6)
		c, err := campaign.NewCampaign(userID, name, []social.Platform{social.PlatformFacebook}, start, end, "10:00")
		require.NoError(t, err)
		return c
	}

	t.Run("save and find scoped to owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCampaignRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		c := newCampaign(t, userID, "Spring Launch")
		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByID(ctx, userID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Spring Launch", found.Name)
		assert.Equal(t, campaign.CampaignStatusActive, found.Status)
		assert.Equal(t, []social.Platform{social.PlatformFacebook}, []social.Platform(found.Platforms))

		_, err = repo.FindByID(ctx, uuid.New(), c.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find all filters by status", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCampaignRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		active := newCampaign(t, userID, "Active One")
		require.NoError(t, repo.Save(ctx, active))

		paused := newCampaign(t, userID, "Paused One")
		require.NoError(t, paused.Pause())
		require.NoError(t, repo.Save(ctx, paused))

		filter := shared.Filter{
			Page:     1,
			PageSize: 10,
			Filters:  map[string]interface{}{"status": campaign.CampaignStatusPaused},
		}
		page, err := repo.FindAll(ctx, userID, filter)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Paused One", page.Items[0].Name)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("delete removes campaign and its posts", func(t *testing.T) {
		db := setupTestDB(t)
		campaigns := NewGormCampaignRepository(db)
		posts := NewGormScheduledPostRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		c := newCampaign(t, userID, "Doomed")
		require.NoError(t, campaigns.Save(ctx, c))

		post, err := campaign.NewScheduledPost(userID, c.ID, social.PlatformFacebook, "hello", time.Now())
		require.NoError(t, err)
		require.NoError(t, posts.Save(ctx, post))

		require.NoError(t, campaigns.Delete(ctx, userID, c.ID))

		_, err = campaigns.FindByID(ctx, userID, c.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = posts.FindByID(ctx, userID, post.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete of unknown campaign returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCampaignRepository(db)

		err := repo.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
