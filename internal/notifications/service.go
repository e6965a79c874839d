package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/pagination"
)

// List wraps a page of notifications plus the next page cursor and the
// unread badge count.
type List struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	NextCursor    string                `json:"next_cursor,omitempty"`
}

// Service records and serves the admin notification feed. It also backs the
// notifier hooks in the orders and contact services.
type Service interface {
	OrderCreated(ctx context.Context, order *models.Order) error
	ContactReceived(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context, params pagination.Params, unreadOnly bool) (*List, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the notification service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{repo: repo}, nil
}

// OrderCreated records an unread notification for a freshly placed order.
func (s *service) OrderCreated(ctx context.Context, order *models.Order) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	return s.repo.Create(ctx, &models.Notification{
		Kind:    enums.NotificationKindOrderCreated,
		RefID:   order.ID,
		Message: fmt.Sprintf("New order from %s (%d items)", order.CustomerName, len(order.Items)),
	})
}

// ContactReceived records an unread notification for a new contact message.
func (s *service) ContactReceived(ctx context.Context, message *models.ContactMessage) error {
	if message == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact message is required")
	}
	return s.repo.Create(ctx, &models.Notification{
		Kind:    enums.NotificationKindContactReceived,
		RefID:   message.ID,
		Message: fmt.Sprintf("New contact message from %s", message.Name),
	})
}

// List returns notifications newest first with the unread badge count.
func (s *service) List(ctx context.Context, params pagination.Params, unreadOnly bool) (*List, error) {
	rows, err := s.repo.List(ctx, params, unreadOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	normalized := pagination.NormalizeLimit(params.Limit)
	list := &List{UnreadCount: unread}
	if len(rows) > normalized {
		next := rows[normalized]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID})
		rows = rows[:normalized]
	}
	list.Notifications = rows
	return list, nil
}

// MarkRead flags one notification as read.
func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	return nil
}
