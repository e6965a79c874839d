package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aman2975/hugli-backend/pkg/config"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	redisclient "github.com/Aman2975/hugli-backend/pkg/redis"
)

type cartCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(owner string) string
}

// Service exposes the per-owner cart operations.
type Service interface {
	Get(ctx context.Context, owner string) ([]Item, error)
	Add(ctx context.Context, owner string, item Item) ([]Item, error)
	Remove(ctx context.Context, owner string, cartID string) ([]Item, error)
	SetQuantity(ctx context.Context, owner string, cartID string, quantity int) ([]Item, error)
	Clear(ctx context.Context, owner string) error
	TotalItems(ctx context.Context, owner string) (int, error)
}

type service struct {
	cache cartCache
	keyer cartKeyer
	logg  *logger.Logger
	ttl   time.Duration
}

// NewService builds a Redis-backed cart service.
func NewService(client *redisclient.Client, logg *logger.Logger, cfg config.CartConfig) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &service{cache: client, keyer: client, logg: logg, ttl: ttl}, nil
}

// Get rehydrates the owner's cart. Missing or corrupt stored data yields an
// empty cart, never an error.
func (s *service) Get(ctx context.Context, owner string) ([]Item, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}

	raw, err := s.cache.Get(ctx, s.keyer.CartKey(owner))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return []Item{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		ctx = s.logg.WithCartOwner(ctx, owner)
		s.logg.Warn(ctx, "discarding corrupt cart payload")
		if err := s.cache.Del(ctx, s.keyer.CartKey(owner)); err != nil {
			s.logg.Error(ctx, "delete corrupt cart payload", err)
		}
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Add merges an item into the owner's cart and persists the result.
func (s *service) Add(ctx context.Context, owner string, item Item) ([]Item, error) {
	if strings.TrimSpace(item.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	return s.mutate(ctx, owner, AddItem{Item: item})
}

// Remove drops the line with the given cartId.
func (s *service) Remove(ctx context.Context, owner string, cartID string) ([]Item, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line id is required")
	}
	return s.mutate(ctx, owner, RemoveItem{CartID: cartID})
}

// SetQuantity updates a line's quantity; zero or negative removes the line.
func (s *service) SetQuantity(ctx context.Context, owner string, cartID string, quantity int) ([]Item, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line id is required")
	}
	return s.mutate(ctx, owner, SetQuantity{CartID: cartID, Quantity: quantity})
}

// Clear empties and persists the owner's cart.
func (s *service) Clear(ctx context.Context, owner string) error {
	_, err := s.mutate(ctx, owner, Clear{})
	return err
}

// TotalItems sums quantities across the owner's cart.
func (s *service) TotalItems(ctx context.Context, owner string) (int, error) {
	items, err := s.Get(ctx, owner)
	if err != nil {
		return 0, err
	}
	return TotalItems(items), nil
}

func (s *service) mutate(ctx context.Context, owner string, action Action) ([]Item, error) {
	items, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	next := Apply(items, action)
	if err := s.persist(ctx, owner, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) persist(ctx context.Context, owner string, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.cache.Set(ctx, s.keyer.CartKey(owner), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
