package handler

import (
	"context"
	"time"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/identity"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// newProtectedTestRouter builds a gin engine that injects the given user ID
// the way the JWT middleware would.
func newProtectedTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("jwt_user_id", userID.String())
		c.Next()
	})
	return r
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*campaign.Campaign, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*campaign.Campaign], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*campaign.Campaign]), args.Error(1)
}

func (m *MockCampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockCampaignRepository) IncrementPostedCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCampaignRepository) IncrementFailedCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockScheduledPostRepository struct {
	mock.Mock
}

func (m *MockScheduledPostRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*campaign.ScheduledPost, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostRepository) FindByCampaign(ctx context.Context, userID, campaignID uuid.UUID, filter shared.Filter) (*shared.Paginated[*campaign.ScheduledPost], error) {
	args := m.Called(ctx, userID, campaignID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*campaign.ScheduledPost]), args.Error(1)
}

func (m *MockScheduledPostRepository) FindDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*campaign.ScheduledPost, error) {
	args := m.Called(ctx, userID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*campaign.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostRepository) UsersWithDue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockScheduledPostRepository) Save(ctx context.Context, p *campaign.ScheduledPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockScheduledPostRepository) SaveAll(ctx context.Context, posts []*campaign.ScheduledPost) error {
	args := m.Called(ctx, posts)
	return args.Error(0)
}

func (m *MockScheduledPostRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockSocialAccountRepository struct {
	mock.Mock
}

func (m *MockSocialAccountRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*social.SocialAccount, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.SocialAccount), args.Error(1)
}

func (m *MockSocialAccountRepository) FindByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform social.Platform) (*social.SocialAccount, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.SocialAccount), args.Error(1)
}

func (m *MockSocialAccountRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]social.SocialAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]social.SocialAccount), args.Error(1)
}

func (m *MockSocialAccountRepository) Save(ctx context.Context, account *social.SocialAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockSocialAccountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// stubPublisher returns a fixed result for every publish call
type stubPublisher struct {
	platform social.Platform
	result   social.PublishResult
}

func (p *stubPublisher) Platform() social.Platform {
	return p.platform
}

func (p *stubPublisher) Publish(_ context.Context, _, _ string, _ social.PostContent) social.PublishResult {
	return p.result
}

// stubRegistry resolves every platform to the same stub publisher
type stubRegistry struct {
	publisher social.Publisher
}

func (r *stubRegistry) For(social.Platform) (social.Publisher, error) {
	return r.publisher, nil
}
