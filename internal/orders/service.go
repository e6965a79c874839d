package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/pagination"
	"github.com/Aman2975/hugli-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type notifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
}

type catalogPricer interface {
	BasePrice(ctx context.Context, slug string) (decimal.NullDecimal, error)
}

// Service defines the order operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	AdminGet(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	AdminList(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	logg    *logger.Logger
	notify  notifier
	catalog catalogPricer
}

// NewService builds an order service with the required dependencies. The
// notifier and catalog pricer are optional.
func NewService(repo Repository, tx txRunner, logg *logger.Logger, notify notifier, catalog catalogPricer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg, notify: notify, catalog: catalog}, nil
}

// Create validates the submission and persists the order with its items.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if strings.TrimSpace(input.Customer.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Customer.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if input.Delivery.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery date is required")
	}

	deliveryType := input.Delivery.Type
	if deliveryType == "" {
		deliveryType = enums.DeliveryTypePickup
	}
	if !deliveryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery type %q", deliveryType))
	}
	if deliveryType == enums.DeliveryTypeDelivery && strings.TrimSpace(input.Delivery.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required for delivery orders")
	}

	urgency := input.Preferences.Urgency
	if urgency == "" {
		urgency = enums.UrgencyNormal
	}
	if !urgency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid urgency %q", urgency))
	}

	contactMethod := input.Preferences.ContactMethod
	if contactMethod == "" {
		contactMethod = enums.ContactMethodPhone
	}
	if !contactMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid contact method %q", contactMethod))
	}

	order := &models.Order{
		UserID:               input.UserID,
		Status:               enums.OrderStatusPending,
		CustomerName:         strings.TrimSpace(input.Customer.Name),
		CustomerEmail:        strings.TrimSpace(input.Customer.Email),
		CustomerPhone:        strings.TrimSpace(input.Customer.Phone),
		CustomerCompany:      optional(input.Customer.Company),
		CustomerAddress:      optional(input.Customer.Address),
		DeliveryType:         deliveryType,
		DeliveryAddress:      optional(input.Delivery.Address),
		DeliveryDate:         input.Delivery.Date,
		DeliveryTime:         optional(input.Delivery.Time),
		SpecialInstructions:  optional(input.Delivery.SpecialInstructions),
		Urgency:              urgency,
		ContactMethod:        contactMethod,
		PreferredContactTime: optional(input.Preferences.PreferredContactTime),
	}

	estimated := decimal.Zero
	priced := false
	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			ProductIcon: optional(item.Icon),
			Description: optional(item.Description),
			Quantity:    quantity,
			Options:     types.JSONMap(item.Options),
		})

		if s.catalog != nil {
			if price, err := s.catalog.BasePrice(ctx, item.ID); err == nil && price.Valid {
				estimated = estimated.Add(price.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
				priced = true
			}
		}
	}
	if priced {
		order.EstimatedTotal = decimal.NewNullDecimal(estimated)
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	if s.notify != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID.String())
		if err := s.notify.OrderCreated(ctx, order); err != nil {
			s.logg.Error(ctx, "record order notification", err)
		}
	}

	return order, nil
}

// GetForUser fetches an order owned by the given user.
func (s *service) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildList(rows, params.Limit), nil
}

// AdminGet fetches any order by ID.
func (s *service) AdminGet(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.find(ctx, orderID)
}

// AdminList returns all orders matching the filters, newest first.
func (s *service) AdminList(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status filter %q", *filters.Status))
	}
	rows, err := s.repo.ListAll(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildList(rows, params.Limit), nil
}

// UpdateStatus moves an order through its lifecycle. Transitions outside the
// status machine are rejected.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", next))
	}

	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == next {
		return order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next)).
			WithDetails(map[string]any{"from": order.Status, "to": next})
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = next
	return order, nil
}

// Delete removes an order and its items.
func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.find(ctx, orderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// Stats aggregates order counts per status.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	stats := &Stats{ByStatus: counts}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}

func (s *service) find(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func buildList(rows []models.Order, limit int) *List {
	normalized := pagination.NormalizeLimit(limit)
	list := &List{}
	if len(rows) > normalized {
		next := rows[normalized]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID})
		rows = rows[:normalized]
	}
	list.Orders = rows
	return list
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
