package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			last_login_at DATETIME
		)`,
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			target_audience TEXT,
			image_url TEXT,
			link_url TEXT,
			price NUMERIC NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'USD'
		)`,
		`CREATE TABLE social_accounts (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			user_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			account_name TEXT NOT NULL,
			account_id TEXT NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT,
			connected_at DATETIME NOT NULL,
			revoked_at DATETIME
		)`,
		`CREATE TABLE campaigns (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			platforms TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			post_time TEXT NOT NULL,
			schedule TEXT NOT NULL DEFAULT 'daily',
			total_posts INTEGER NOT NULL DEFAULT 0,
			posted_count INTEGER NOT NULL DEFAULT 0,
			failed_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE scheduled_posts (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			user_id TEXT NOT NULL,
			campaign_id TEXT NOT NULL,
			product_id TEXT,
			platform TEXT NOT NULL,
			content TEXT NOT NULL,
			image_url TEXT,
			link TEXT,
			generated TEXT,
			scheduled_for DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			posted_at DATETIME,
			external_id TEXT,
			error_message TEXT
		)`,
		`CREATE INDEX idx_scheduled_posts_due ON scheduled_posts (scheduled_for, status)`,
	}

	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}
