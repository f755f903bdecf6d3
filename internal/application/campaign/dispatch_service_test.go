package campaign

import (
	"context"
	"errors"
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

type dispatchFixture struct {
	posts      *MockScheduledPostRepository
	campaigns  *MockCampaignRepository
	products   *MockProductRepository
	accounts   *MockSocialAccountRepository
	registry   *stubRegistry
	service    *DispatchService
	userID     uuid.UUID
	campaignID uuid.UUID
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{
		posts:      new(MockScheduledPostRepository),
		campaigns:  new(MockCampaignRepository),
		products:   new(MockProductRepository),
		accounts:   new(MockSocialAccountRepository),
		registry:   &stubRegistry{publishers: map[social.Platform]social.Publisher{}},
		userID:     uuid.New(),
		campaignID: uuid.New(),
	}
	f.service = NewDispatchService(f.posts, f.campaigns, f.products, f.accounts, f.registry, zap.NewNop(), 0)
	return f
}

func (f *dispatchFixture) duePost(t *testing.T, platform social.Platform) *campaign.ScheduledPost {
	t.Helper()
	post, err := campaign.NewScheduledPost(f.userID, f.campaignID, platform, "Check out our new product!", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return post
}

func (f *dispatchFixture) connectAccount(t *testing.T, platform social.Platform) {
	t.Helper()
	acc, err := social.NewSocialAccount(f.userID, platform, "Acme", "acct_"+string(platform), "tok_"+string(platform))
	require.NoError(t, err)
	f.accounts.On("FindByUserAndPlatform", mock.Anything, f.userID, platform).Return(acc, nil)
}

func TestDispatchRunBatchEmpty(t *testing.T) {
	f := newDispatchFixture(t)
	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return([]*campaign.ScheduledPost{}, nil)

	summary, err := f.service.RunBatch(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Zero(t, summary.Posted)
	assert.Zero(t, summary.Failed)
	assert.Empty(t, summary.Results)
}

func TestDispatchRunBatchSelectorFailure(t *testing.T) {
	f := newDispatchFixture(t)
	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return(nil, shared.ErrStoreUnavailable)

	_, err := f.service.RunBatch(context.Background(), f.userID)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
}

func TestDispatchRunBatchMixedOutcomes(t *testing.T) {
	// Three due posts: facebook has an account and publishes fine, instagram
	// has no connected account, twitter has an account and publishes fine.
	f := newDispatchFixture(t)

	fb := f.duePost(t, social.PlatformFacebook)
	ig := f.duePost(t, social.PlatformInstagram)
	tw := f.duePost(t, social.PlatformTwitter)

	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return([]*campaign.ScheduledPost{fb, ig, tw}, nil)
	f.posts.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.campaigns.On("IncrementPostedCount", mock.Anything, f.campaignID).Return(nil)
	f.campaigns.On("IncrementFailedCount", mock.Anything, f.campaignID).Return(nil)

	f.connectAccount(t, social.PlatformFacebook)
	f.connectAccount(t, social.PlatformTwitter)
	f.accounts.On("FindByUserAndPlatform", mock.Anything, f.userID, social.PlatformInstagram).
		Return(nil, shared.ErrNotFound)

	fbPub := &spyPublisher{platform: social.PlatformFacebook, result: social.Published("fb_1")}
	igPub := &spyPublisher{platform: social.PlatformInstagram, result: social.Published("ig_1")}
	twPub := &spyPublisher{platform: social.PlatformTwitter, result: social.Published("tw_1")}
	f.registry.publishers[social.PlatformFacebook] = fbPub
	f.registry.publishers[social.PlatformInstagram] = igPub
	f.registry.publishers[social.PlatformTwitter] = twPub

	summary, err := f.service.RunBatch(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Posted)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 3)

	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	assert.Equal(t, "Social account not connected", summary.Results[1].Error)
	assert.True(t, summary.Results[2].Success)

	// No adapter call may happen for a platform without an account.
	assert.Empty(t, igPub.calls)
	assert.Len(t, fbPub.calls, 1)
	assert.Len(t, twPub.calls, 1)

	// Posts reached their final states.
	assert.Equal(t, campaign.PostStatusPosted, fb.Status)
	assert.Equal(t, "fb_1", fb.ExternalID)
	assert.Equal(t, campaign.PostStatusFailed, ig.Status)
	assert.Equal(t, "Social account not connected", ig.ErrorMessage)
	assert.Equal(t, campaign.PostStatusPosted, tw.Status)

	f.campaigns.AssertNumberOfCalls(t, "IncrementPostedCount", 2)
	f.campaigns.AssertNumberOfCalls(t, "IncrementFailedCount", 1)
}

func TestDispatchPerPostIsolation(t *testing.T) {
	// Five due posts; the second one's adapter reports failure and the third
	// one's adapter panics. The rest must still be published.
	f := newDispatchFixture(t)

	posts := make([]*campaign.ScheduledPost, 5)
	for i := range posts {
		posts[i] = f.duePost(t, social.PlatformFacebook)
	}

	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return(posts, nil)
	f.posts.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.campaigns.On("IncrementPostedCount", mock.Anything, f.campaignID).Return(nil)
	f.campaigns.On("IncrementFailedCount", mock.Anything, f.campaignID).Return(nil)
	f.connectAccount(t, social.PlatformFacebook)

	calls := 0
	f.registry.publishers[social.PlatformFacebook] = publisherFunc(func(content social.PostContent) social.PublishResult {
		calls++
		switch calls {
		case 2:
			return social.Failure("platform rejected the post")
		case 3:
			panic("adapter blew up")
		default:
			return social.Published("fb_ok")
		}
	})

	summary, err := f.service.RunBatch(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Posted)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 5, calls, "every post must be attempted despite earlier failures")

	assert.Equal(t, campaign.PostStatusFailed, posts[1].Status)
	assert.Equal(t, "platform rejected the post", posts[1].ErrorMessage)
	assert.Equal(t, campaign.PostStatusFailed, posts[2].Status)
	assert.Contains(t, posts[2].ErrorMessage, "adapter blew up")
	assert.Equal(t, campaign.PostStatusPosted, posts[4].Status)
}

func TestDispatchAggregatorErrorDoesNotAbort(t *testing.T) {
	f := newDispatchFixture(t)

	first := f.duePost(t, social.PlatformTwitter)
	second := f.duePost(t, social.PlatformTwitter)

	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return([]*campaign.ScheduledPost{first, second}, nil)
	f.posts.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.campaigns.On("IncrementPostedCount", mock.Anything, f.campaignID).Return(shared.ErrNotFound)
	f.connectAccount(t, social.PlatformTwitter)
	f.registry.publishers[social.PlatformTwitter] = &spyPublisher{platform: social.PlatformTwitter, result: social.Published("tw_1")}

	summary, err := f.service.RunBatch(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Posted)
	assert.Equal(t, campaign.PostStatusPosted, first.Status)
	assert.Equal(t, campaign.PostStatusPosted, second.Status)
}

func TestDispatchUsesCurrentProductAssets(t *testing.T) {
	// The product's image and link are resolved at publish time, so edits
	// made after the campaign was scheduled reach the platform.
	f := newDispatchFixture(t)

	product, err := catalog.NewProduct(f.userID, "Stoneware Mug", "Hand thrown", decimal.NewFromInt(20))
	require.NoError(t, err)
	product.ImageURL = "https://cdn.example.com/mug-v2.jpg"
	product.LinkURL = "https://shop.example.com/mug"

	post := f.duePost(t, social.PlatformFacebook)
	post.SetProduct(product.ID)
	post.ImageURL = "https://cdn.example.com/mug-v1.jpg"

	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return([]*campaign.ScheduledPost{post}, nil)
	f.posts.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.campaigns.On("IncrementPostedCount", mock.Anything, f.campaignID).Return(nil)
	f.products.On("FindByID", mock.Anything, f.userID, product.ID).Return(product, nil)
	f.connectAccount(t, social.PlatformFacebook)

	spy := &spyPublisher{platform: social.PlatformFacebook, result: social.Published("fb_1")}
	f.registry.publishers[social.PlatformFacebook] = spy

	summary, err := f.service.RunBatch(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Posted)

	require.Len(t, spy.calls, 1)
	assert.Equal(t, "https://cdn.example.com/mug-v2.jpg", spy.calls[0].ImageURL)
	assert.Equal(t, "https://shop.example.com/mug", spy.calls[0].Link)
}

func TestDispatchDeletedProductKeepsSnapshot(t *testing.T) {
	f := newDispatchFixture(t)

	productID := uuid.New()
	post := f.duePost(t, social.PlatformFacebook)
	post.SetProduct(productID)
	post.ImageURL = "https://cdn.example.com/mug-v1.jpg"

	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return([]*campaign.ScheduledPost{post}, nil)
	f.posts.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.campaigns.On("IncrementPostedCount", mock.Anything, f.campaignID).Return(nil)
	f.products.On("FindByID", mock.Anything, f.userID, productID).Return(nil, shared.ErrNotFound)
	f.connectAccount(t, social.PlatformFacebook)

	spy := &spyPublisher{platform: social.PlatformFacebook, result: social.Published("fb_1")}
	f.registry.publishers[social.PlatformFacebook] = spy

	summary, err := f.service.RunBatch(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Posted)

	require.Len(t, spy.calls, 1)
	assert.Equal(t, "https://cdn.example.com/mug-v1.jpg", spy.calls[0].ImageURL)
}

func TestDispatchStopsWhenContextCancelled(t *testing.T) {
	f := newDispatchFixture(t)

	posts := []*campaign.ScheduledPost{
		f.duePost(t, social.PlatformFacebook),
		f.duePost(t, social.PlatformFacebook),
	}
	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return(posts, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.service.RunBatch(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, summary.Results, "no post is attempted once the budget is gone")
	assert.Equal(t, campaign.PostStatusScheduled, posts[0].Status)
}

func TestDispatchRunAllDue(t *testing.T) {
	f := newDispatchFixture(t)
	otherUser := uuid.New()

	f.posts.On("UsersWithDue", mock.Anything, mock.Anything).
		Return([]uuid.UUID{f.userID, otherUser}, nil)
	f.posts.On("FindDue", mock.Anything, f.userID, mock.Anything, DefaultBatchLimit).
		Return([]*campaign.ScheduledPost{}, nil)
	f.posts.On("FindDue", mock.Anything, otherUser, mock.Anything, DefaultBatchLimit).
		Return(nil, errors.New("connection reset"))

	err := f.service.RunAllDue(context.Background())
	require.NoError(t, err, "one user's batch failing must not fail the sweep")
	f.posts.AssertNumberOfCalls(t, "FindDue", 2)
}

// publisherFunc adapts a function to the Publisher interface for tests
type publisherFunc func(content social.PostContent) social.PublishResult

func (publisherFunc) Platform() social.Platform { return social.PlatformFacebook }

func (f publisherFunc) Publish(_ context.Context, _, _ string, content social.PostContent) social.PublishResult {
	return f(content)
}
