// Package integration exercises the full HTTP stack over an in-memory
// SQLite database: real services, real repositories, real middleware, with
// only the platform publishers and the text generator replaced by fakes.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"go.uber.org/zap"

	appcampaign "github.com/promoflow/backend/internal/application/campaign"
	"github.com/promoflow/backend/internal/application/catalog"
	appcontent "github.com/promoflow/backend/internal/application/content"
	"github.com/promoflow/backend/internal/application/identity"
	appsocial "github.com/promoflow/backend/internal/application/social"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/promoflow/backend/internal/infrastructure/auth"
	"github.com/promoflow/backend/internal/infrastructure/config"
	"github.com/promoflow/backend/internal/infrastructure/persistence"
	"github.com/promoflow/backend/internal/interfaces/http/handler"
	"github.com/promoflow/backend/internal/interfaces/http/middleware"
	"github.com/promoflow/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePublisher records publishes and returns a configurable result
type fakePublisher struct {
	platform social.Platform

	mu     sync.Mutex
	calls  int
	result social.PublishResult
}

func (p *fakePublisher) Platform() social.Platform { return p.platform }

func (p *fakePublisher) Publish(ctx context.Context, accessToken, accountID string, content social.PostContent) social.PublishResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.result
}

func (p *fakePublisher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// fakeRegistry hands out fake publishers, creating a succeeding one per
// platform on first use
type fakeRegistry struct {
	mu         sync.Mutex
	publishers map[social.Platform]*fakePublisher
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{publishers: make(map[social.Platform]*fakePublisher)}
}

func (r *fakeRegistry) For(platform social.Platform) (social.Publisher, error) {
	return r.get(platform), nil
}

func (r *fakeRegistry) get(platform social.Platform) *fakePublisher {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.publishers[platform]
	if !ok {
		p = &fakePublisher{
			platform: platform,
			result:   social.Published("ext-" + string(platform)),
		}
		r.publishers[platform] = p
	}
	return p
}

// failPlatform makes every publish on the platform fail with the message
func (r *fakeRegistry) failPlatform(platform social.Platform, message string) {
	p := r.get(platform)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = social.Failure(message)
}

// staticGenerator returns canned text for every prompt
type staticGenerator struct {
	text string
}

func (g staticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, nil
}

// TestServer is a fully wired backend over SQLite
type TestServer struct {
	Engine     *gin.Engine
	DB         *gorm.DB
	Publishers *fakeRegistry
}

func newTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := setupTestDB(t)
	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	accountRepo := persistence.NewGormSocialAccountRepository(db)
	campaignRepo := persistence.NewGormCampaignRepository(db)
	postRepo := persistence.NewGormScheduledPostRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-secret-key-32-chars-xx",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "promoflow-test",
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identity.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalog.NewProductService(productRepo)
	accountService := appsocial.NewAccountService(accountRepo, log)
	contentService := appcontent.NewContentService(postRepo, productRepo, staticGenerator{text: "generated copy"}, log)
	campaignService := appcampaign.NewCampaignService(txScope, campaignRepo, postRepo, productRepo, contentService, log)

	publishers := newFakeRegistry()
	dispatchService := appcampaign.NewDispatchService(postRepo, campaignRepo, productRepo, accountRepo, publishers, log, 0)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	campaignHandler := handler.NewCampaignHandler(campaignService, dispatchService, 0)
	accountHandler := handler.NewSocialAccountHandler(accountService)
	contentHandler := handler.NewContentHandler(contentService)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(router.NewDomainGroup("auth", "/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.Refresh).
		POST("/logout", authHandler.Logout).
		GET("/me", authHandler.Me))

	r.Register(router.NewDomainGroup("products", "/products").
		POST("", productHandler.Create).
		GET("", productHandler.List).
		GET("/:id", productHandler.GetByID).
		PUT("/:id", productHandler.Update).
		DELETE("/:id", productHandler.Delete))

	r.Register(router.NewDomainGroup("campaigns", "/campaigns").
		POST("", campaignHandler.Create).
		GET("", campaignHandler.List).
		POST("/dispatch", campaignHandler.Dispatch).
		GET("/:id", campaignHandler.GetByID).
		POST("/:id/pause", campaignHandler.Pause).
		POST("/:id/resume", campaignHandler.Resume).
		DELETE("/:id", campaignHandler.Delete).
		GET("/:id/posts", campaignHandler.ListPosts))

	r.Register(router.NewDomainGroup("posts", "/posts").
		DELETE("/:id", campaignHandler.DeletePost).
		POST("/:id/generate", contentHandler.GenerateForPost))

	r.Register(router.NewDomainGroup("social-accounts", "/social-accounts").
		POST("", accountHandler.Connect).
		GET("", accountHandler.List).
		DELETE("/:id", accountHandler.Disconnect))

	r.Setup()

	return &TestServer{Engine: engine, DB: db, Publishers: publishers}
}

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

// apiResponse mirrors the dto.Response envelope loosely for assertions
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

// do performs a request against the server, optionally authenticated
func (s *TestServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
			"unexpected response body: %s", w.Body.String())
	}
	return w, resp
}

// registerUser signs up a user and returns the access and refresh tokens
func (s *TestServer) registerUser(t *testing.T, email string) (accessToken, refreshToken string) {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"password": "s3cret-pass",
		"name":     "Integration User",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	var data struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Tokens.AccessToken)
	return data.Tokens.AccessToken, data.Tokens.RefreshToken
}

// createProduct creates a product and returns its ID
func (s *TestServer) createProduct(t *testing.T, token, name string) string {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/products", token, map[string]any{
		"name":        name,
		"description": "A product for integration tests",
		"category":    "gadgets",
	})
	require.Equal(t, http.StatusCreated, w.Code, "create product failed: %s", w.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.ID
}

// connectAccount links a social account for the platform
func (s *TestServer) connectAccount(t *testing.T, token string, platform social.Platform) {
	t.Helper()

	w, _ := s.do(t, http.MethodPost, "/api/v1/social-accounts", token, map[string]any{
		"platform":     string(platform),
		"account_name": fmt.Sprintf("%s-page", platform),
		"account_id":   fmt.Sprintf("acct-%s", platform),
		"access_token": "platform-token",
	})
	require.Equal(t, http.StatusCreated, w.Code, "connect account failed: %s", w.Body.String())
}
