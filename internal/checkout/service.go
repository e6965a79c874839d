package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/internal/cart"
	"github.com/Aman2975/hugli-backend/internal/orders"
	"github.com/Aman2975/hugli-backend/pkg/config"
	"github.com/Aman2975/hugli-backend/pkg/db/models"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	redisclient "github.com/Aman2975/hugli-backend/pkg/redis"
)

type draftCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type draftKeyer interface {
	DraftKey(owner string) string
}

type orderCreator interface {
	Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error)
}

// Service drives the order draft through its steps and into submission.
type Service interface {
	Get(ctx context.Context, owner string) (*Draft, error)
	SaveCustomerInfo(ctx context.Context, owner string, info CustomerInfo) (*Draft, error)
	SaveDeliveryInfo(ctx context.Context, owner string, info DeliveryInfo) (*Draft, error)
	SavePreferences(ctx context.Context, owner string, prefs Preferences) (*Draft, error)
	Advance(ctx context.Context, owner string) (*Draft, error)
	Back(ctx context.Context, owner string) (*Draft, error)
	Submit(ctx context.Context, owner string, userID *uuid.UUID) (*models.Order, error)
}

type service struct {
	cache  draftCache
	keyer  draftKeyer
	carts  cart.Service
	orders orderCreator
	logg   *logger.Logger
	ttl    time.Duration
}

// NewService builds the checkout service backed by Redis draft storage.
func NewService(client *redisclient.Client, carts cart.Service, orderSvc orderCreator, logg *logger.Logger, cfg config.CartConfig) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive")
	}
	return &service{cache: client, keyer: client, carts: carts, orders: orderSvc, logg: logg, ttl: ttl}, nil
}

// Get rehydrates the owner's draft, starting a fresh one when nothing usable
// is stored.
func (s *service) Get(ctx context.Context, owner string) (*Draft, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft owner is required")
	}

	raw, err := s.cache.Get(ctx, s.keyer.DraftKey(owner))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return NewDraft(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		s.logg.Warn(s.logg.WithCartOwner(ctx, owner), "discarding corrupt draft payload")
		return NewDraft(), nil
	}
	if draft.Step < StepCustomerInfo || draft.Step > StepReview {
		draft.Step = StepCustomerInfo
	}
	return &draft, nil
}

// SaveCustomerInfo stores the step-1 fields without gating. Validation runs
// when the draft advances.
func (s *service) SaveCustomerInfo(ctx context.Context, owner string, info CustomerInfo) (*Draft, error) {
	return s.update(ctx, owner, func(d *Draft) error {
		d.CustomerInfo = info
		return nil
	})
}

// SaveDeliveryInfo stores the step-2 fields without gating.
func (s *service) SaveDeliveryInfo(ctx context.Context, owner string, info DeliveryInfo) (*Draft, error) {
	return s.update(ctx, owner, func(d *Draft) error {
		d.DeliveryInfo = info
		return nil
	})
}

// SavePreferences stores the contact preferences without gating.
func (s *service) SavePreferences(ctx context.Context, owner string, prefs Preferences) (*Draft, error) {
	return s.update(ctx, owner, func(d *Draft) error {
		d.Preferences = prefs
		return nil
	})
}

// Advance validates the current step and moves the draft forward.
func (s *service) Advance(ctx context.Context, owner string) (*Draft, error) {
	return s.update(ctx, owner, func(d *Draft) error {
		return d.Advance()
	})
}

// Back moves the draft to the previous step unconditionally.
func (s *service) Back(ctx context.Context, owner string) (*Draft, error) {
	return s.update(ctx, owner, func(d *Draft) error {
		d.Back()
		return nil
	})
}

// Submit validates the whole draft against the owner's cart and creates the
// order. The cart is cleared and the draft dropped only after the order
// persists; failures leave both intact for retry.
func (s *service) Submit(ctx context.Context, owner string, userID *uuid.UUID) (*models.Order, error) {
	draft, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	items, err := s.carts.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := ValidateCustomerInfo(draft.CustomerInfo); err != nil {
		return nil, err
	}
	if err := ValidateDeliveryInfo(draft.DeliveryInfo); err != nil {
		return nil, err
	}
	if err := ValidatePreferences(draft.Preferences); err != nil {
		return nil, err
	}

	deliveryDate, err := ParseDeliveryDate(draft.DeliveryInfo.DeliveryDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse delivery date")
	}

	input := orders.CreateOrderInput{
		UserID: userID,
		Customer: orders.CustomerInput{
			Name:    draft.CustomerInfo.Name,
			Email:   draft.CustomerInfo.Email,
			Phone:   draft.CustomerInfo.Phone,
			Company: draft.CustomerInfo.Company,
			Address: draft.CustomerInfo.Address,
		},
		Delivery: orders.DeliveryInput{
			Type:                draft.DeliveryInfo.DeliveryType,
			Address:             draft.DeliveryInfo.DeliveryAddress,
			Date:                deliveryDate,
			Time:                draft.DeliveryInfo.DeliveryTime,
			SpecialInstructions: draft.DeliveryInfo.SpecialInstructions,
		},
		Preferences: orders.PreferencesInput{
			Urgency:              draft.Preferences.Urgency,
			ContactMethod:        draft.Preferences.ContactMethod,
			PreferredContactTime: draft.Preferences.PreferredContactTime,
		},
	}
	for _, item := range items {
		input.Items = append(input.Items, orders.ItemInput{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Icon:        item.Icon,
			Quantity:    item.Quantity,
			Options:     item.Options,
		})
	}

	order, err := s.orders.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithOrderID(s.logg.WithCartOwner(ctx, owner), order.ID.String())
	if err := s.carts.Clear(ctx, owner); err != nil {
		s.logg.Error(ctx, "clear cart after submission", err)
	}
	if err := s.cache.Del(ctx, s.keyer.DraftKey(owner)); err != nil {
		s.logg.Error(ctx, "drop draft after submission", err)
	}
	s.logg.Info(ctx, "order submitted")

	return order, nil
}

func (s *service) update(ctx context.Context, owner string, mutate func(*Draft) error) (*Draft, error) {
	draft, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := mutate(draft); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, owner, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *service) persist(ctx context.Context, owner string, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode draft")
	}
	if err := s.cache.Set(ctx, s.keyer.DraftKey(owner), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist draft")
	}
	return nil
}
