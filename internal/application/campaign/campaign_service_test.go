package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type campaignFixture struct {
	campaigns *MockCampaignRepository
	posts     *MockScheduledPostRepository
	products  *MockProductRepository
	service   *CampaignService
	userID    uuid.UUID
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()
	f := &campaignFixture{
		campaigns: new(MockCampaignRepository),
		posts:     new(MockScheduledPostRepository),
		products:  new(MockProductRepository),
		userID:    uuid.New(),
	}
	scope := NewNoOpTransactionScope(f.campaigns, f.posts)
	f.service = NewCampaignService(scope, f.campaigns, f.posts, f.products, nil, zap.NewNop())
	return f
}

func (f *campaignFixture) product(t *testing.T, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(f.userID, name, "A fine product", decimal.NewFromInt(10))
	require.NoError(t, err)
	p.ImageURL = "https://cdn.example.com/p.jpg"
	p.LinkURL = "https://shop.example.com/p"
	return p
}

func TestCampaignServiceCreate(t *testing.T) {
	f := newCampaignFixture(t)

	mug := f.product(t, "Ceramic Mug")
	bowl := f.product(t, "Salad Bowl")
	productIDs := []uuid.UUID{mug.ID, bowl.ID}

	f.products.On("FindByIDs", mock.Anything, f.userID, productIDs).
		Return([]*catalog.Product{mug, bowl}, nil)
	f.campaigns.On("Save", mock.Anything, mock.Anything).Return(nil)

	var savedPosts []*campaign.ScheduledPost
	f.posts.On("SaveAll", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedPosts = args.Get(1).([]*campaign.ScheduledPost)
		}).
		Return(nil)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	resp, err := f.service.Create(context.Background(), f.userID, CreateCampaignRequest{
		Name:       "Spring Push",
		Platforms:  []social.Platform{social.PlatformFacebook, social.PlatformTwitter},
		ProductIDs: productIDs,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 2), // 3 days inclusive
		PostTime:   "10:30",
	})
	require.NoError(t, err)

	// 2 platforms x 2 products x 3 days
	assert.Equal(t, 12, resp.TotalPosts)
	require.Len(t, savedPosts, 12)

	first := savedPosts[0]
	assert.Equal(t, campaign.PostStatusScheduled, first.Status)
	assert.Equal(t, 10, first.ScheduledFor.Hour())
	assert.Equal(t, 30, first.ScheduledFor.Minute())
	assert.Equal(t, "https://cdn.example.com/p.jpg", first.ImageURL)
	assert.Equal(t, "https://shop.example.com/p", first.Link)
	require.NotNil(t, first.Generated)
	assert.NotEmpty(t, first.Generated.Hashtags)

	// Every post carries a product reference and falls inside the window.
	for _, p := range savedPosts {
		require.NotNil(t, p.ProductID)
		assert.False(t, p.ScheduledFor.Before(start))
		assert.False(t, p.ScheduledFor.After(start.AddDate(0, 0, 2).Add(11*time.Hour)))
	}
}

func TestCampaignServiceCreateUnknownProduct(t *testing.T) {
	f := newCampaignFixture(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	// Only one of the two requested products resolves.
	f.products.On("FindByIDs", mock.Anything, f.userID, ids).
		Return([]*catalog.Product{f.product(t, "Ceramic Mug")}, nil)

	_, err := f.service.Create(context.Background(), f.userID, CreateCampaignRequest{
		Name:       "Spring Push",
		Platforms:  []social.Platform{social.PlatformFacebook},
		ProductIDs: ids,
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(0, 0, 1),
		PostTime:   "10:30",
	})
	require.Error(t, err)
	f.posts.AssertNotCalled(t, "SaveAll")
}

func TestCampaignServiceCreateRollsBackOnPostFailure(t *testing.T) {
	f := newCampaignFixture(t)
	mug := f.product(t, "Ceramic Mug")

	f.products.On("FindByIDs", mock.Anything, f.userID, []uuid.UUID{mug.ID}).
		Return([]*catalog.Product{mug}, nil)
	f.campaigns.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.posts.On("SaveAll", mock.Anything, mock.Anything).Return(shared.ErrStoreUnavailable)

	_, err := f.service.Create(context.Background(), f.userID, CreateCampaignRequest{
		Name:       "Spring Push",
		Platforms:  []social.Platform{social.PlatformFacebook},
		ProductIDs: []uuid.UUID{mug.ID},
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(0, 0, 1),
		PostTime:   "10:30",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
}

func TestCampaignServicePauseResume(t *testing.T) {
	f := newCampaignFixture(t)
	c, err := campaign.NewCampaign(f.userID, "Spring Push", []social.Platform{social.PlatformFacebook},
		time.Now(), time.Now().AddDate(0, 0, 1), "09:00")
	require.NoError(t, err)

	f.campaigns.On("FindByID", mock.Anything, f.userID, c.ID).Return(c, nil)
	f.campaigns.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.Pause(context.Background(), f.userID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "paused", resp.Status)

	resp, err = f.service.Resume(context.Background(), f.userID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)

	// Resuming an already active campaign is rejected.
	_, err = f.service.Resume(context.Background(), f.userID, c.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCampaignServiceDeletePost(t *testing.T) {
	f := newCampaignFixture(t)
	post, err := campaign.NewScheduledPost(f.userID, uuid.New(), social.PlatformFacebook, "text", time.Now())
	require.NoError(t, err)

	f.posts.On("FindByID", mock.Anything, f.userID, post.ID).Return(post, nil)
	f.posts.On("Delete", mock.Anything, f.userID, post.ID).Return(nil)

	require.NoError(t, f.service.DeletePost(context.Background(), f.userID, post.ID))

	// A resolved post cannot be deleted.
	require.NoError(t, post.MarkPosted("ext"))
	err = f.service.DeletePost(context.Background(), f.userID, post.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestTemplateComposer(t *testing.T) {
	p, err := catalog.NewProduct(uuid.New(), "Ceramic Mug", "Hand-glazed", decimal.NewFromInt(10))
	require.NoError(t, err)

	draft, err := TemplateComposer{}.Compose(context.Background(), p, social.PlatformFacebook)
	require.NoError(t, err)
	assert.Contains(t, draft.Text, "Ceramic Mug")
	assert.Equal(t, []string{"#ceramic", "#mug"}, draft.Hashtags)
}
