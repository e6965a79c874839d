package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman2975/hugli-backend/internal/cart"
	"github.com/Aman2975/hugli-backend/internal/orders"
	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
)

type memoryCache struct {
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type passthroughKeyer struct{}

func (passthroughKeyer) DraftKey(owner string) string { return "draft:" + owner }

type fakeCarts struct {
	items   []cart.Item
	cleared bool
}

func (f *fakeCarts) Get(context.Context, string) ([]cart.Item, error) { return f.items, nil }
func (f *fakeCarts) Add(_ context.Context, _ string, item cart.Item) ([]cart.Item, error) {
	f.items = append(f.items, item)
	return f.items, nil
}
func (f *fakeCarts) Remove(context.Context, string, string) ([]cart.Item, error) {
	return f.items, nil
}
func (f *fakeCarts) SetQuantity(context.Context, string, string, int) ([]cart.Item, error) {
	return f.items, nil
}
func (f *fakeCarts) Clear(context.Context, string) error {
	f.cleared = true
	f.items = nil
	return nil
}
func (f *fakeCarts) TotalItems(context.Context, string) (int, error) {
	return cart.TotalItems(f.items), nil
}

type fakeOrderCreator struct {
	input orders.CreateOrderInput
	err   error
}

func (f *fakeOrderCreator) Create(_ context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	return &models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}, nil
}

func testService(carts *fakeCarts, creator *fakeOrderCreator) (*service, *memoryCache) {
	cache := newMemoryCache()
	return &service{
		cache:  cache,
		keyer:  passthroughKeyer{},
		carts:  carts,
		orders: creator,
		logg:   logger.New(logger.Options{Level: logger.ParseLevel("error")}),
		ttl:    time.Hour,
	}, cache
}

func readyDraft(t *testing.T, svc *service, owner string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.SaveCustomerInfo(ctx, owner, CustomerInfo{
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Phone: "+91 98765 43210",
	})
	require.NoError(t, err)
	_, err = svc.SaveDeliveryInfo(ctx, owner, DeliveryInfo{
		DeliveryType: enums.DeliveryTypePickup,
		DeliveryDate: time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02"),
	})
	require.NoError(t, err)
}

func TestDraftPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService(&fakeCarts{}, &fakeOrderCreator{})

	readyDraft(t, svc, "owner-1")

	_, err := svc.Advance(ctx, "owner-1")
	require.NoError(t, err)

	draft, err := svc.Get(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, StepDeliveryInfo, draft.Step)
	assert.Equal(t, "Asha Verma", draft.CustomerInfo.Name)
}

func TestAdvanceDoesNotPersistFailedTransition(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService(&fakeCarts{}, &fakeOrderCreator{})

	_, err := svc.SaveCustomerInfo(ctx, "owner-1", CustomerInfo{Name: "No Email"})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, "owner-1")
	require.Error(t, err)

	draft, err := svc.Get(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, StepCustomerInfo, draft.Step)
}

func TestCorruptDraftResetsToStepOne(t *testing.T) {
	svc, cache := testService(&fakeCarts{}, &fakeOrderCreator{})
	cache.data["draft:owner-1"] = "{broken"

	draft, err := svc.Get(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, StepCustomerInfo, draft.Step)
}

func TestSubmitRequiresNonEmptyCart(t *testing.T) {
	svc, _ := testService(&fakeCarts{}, &fakeOrderCreator{})
	readyDraft(t, svc, "owner-1")

	_, err := svc.Submit(context.Background(), "owner-1", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitClearsCartAndDraftOnSuccess(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{items: []cart.Item{{
		ID:       "stickers",
		CartID:   uuid.NewString(),
		Name:     "Stickers",
		Quantity: 2,
		Options:  map[string]any{"size": "medium"},
	}}}
	creator := &fakeOrderCreator{}
	svc, cache := testService(carts, creator)
	readyDraft(t, svc, "owner-1")

	order, err := svc.Submit(ctx, "owner-1", nil)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.True(t, carts.cleared)
	_, draftRemains := cache.data["draft:owner-1"]
	assert.False(t, draftRemains)

	require.Len(t, creator.input.Items, 1)
	assert.Equal(t, "medium", creator.input.Items[0].Options["size"])
	assert.Equal(t, "Asha Verma", creator.input.Customer.Name)
}

func TestSubmitRetainsCartAndDraftOnFailure(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{items: []cart.Item{{
		ID:       "stickers",
		CartID:   uuid.NewString(),
		Name:     "Stickers",
		Quantity: 2,
	}}}
	creator := &fakeOrderCreator{err: pkgerrors.New(pkgerrors.CodeDependency, "database unavailable")}
	svc, cache := testService(carts, creator)
	readyDraft(t, svc, "owner-1")

	_, err := svc.Submit(ctx, "owner-1", nil)
	require.Error(t, err)

	assert.False(t, carts.cleared)
	_, draftRemains := cache.data["draft:owner-1"]
	assert.True(t, draftRemains)
}

func TestSubmitValidatesDraftBeforeCreating(t *testing.T) {
	carts := &fakeCarts{items: []cart.Item{{ID: "stickers", Name: "Stickers", Quantity: 1}}}
	creator := &fakeOrderCreator{}
	svc, _ := testService(carts, creator)

	// draft never filled in
	_, err := svc.Submit(context.Background(), "owner-1", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, creator.input.Items)
}
