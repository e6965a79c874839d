package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/pagination"
)

// ServiceTypes lists the print services offered on the contact form.
var ServiceTypes = []string{
	"Visiting Cards",
	"Pamphlets & Posters",
	"Garment Tags",
	"Files",
	"Letter Heads",
	"Envelopes",
	"Digital Paper Printing",
	"ATM Pouches",
	"Bill Books",
	"Stickers",
	"Other",
}

type notifier interface {
	ContactReceived(ctx context.Context, message *models.ContactMessage) error
}

// SubmitInput carries the public contact-form fields.
type SubmitInput struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	Subject     string
	Message     string
	ServiceType string
}

// List wraps a page of messages plus the next page cursor.
type List struct {
	Messages   []models.ContactMessage `json:"messages"`
	NextCursor string                  `json:"next_cursor,omitempty"`
}

// Service defines contact message operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.ContactMessage, error)
	AdminGet(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	AdminList(ctx context.Context, params pagination.Params, status *enums.ContactStatus) (*List, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ContactStatus) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logg   *logger.Logger
	notify notifier
}

// NewService builds the contact service. The notifier is optional.
func NewService(repo Repository, logg *logger.Logger, notify notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, notify: notify}, nil
}

// Submit stores a public enquiry. Only the name is required.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.ContactMessage, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.ServiceType != "" && !validServiceType(input.ServiceType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service type %q", input.ServiceType))
	}

	message := &models.ContactMessage{
		Name:        strings.TrimSpace(input.Name),
		Email:       optional(input.Email),
		Phone:       optional(input.Phone),
		Company:     optional(input.Company),
		Subject:     optional(input.Subject),
		Message:     optional(input.Message),
		ServiceType: optional(input.ServiceType),
		Status:      enums.ContactStatusNew,
	}

	created, err := s.repo.Create(ctx, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact message")
	}

	if s.notify != nil {
		if err := s.notify.ContactReceived(ctx, created); err != nil {
			s.logg.Error(ctx, "record contact notification", err)
		}
	}

	return created, nil
}

// AdminGet fetches one message by ID.
func (s *service) AdminGet(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	return s.find(ctx, id)
}

// AdminList returns messages newest first, optionally filtered by status.
func (s *service) AdminList(ctx context.Context, params pagination.Params, status *enums.ContactStatus) (*List, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status filter %q", *status))
	}

	rows, err := s.repo.List(ctx, params, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact messages")
	}

	normalized := pagination.NormalizeLimit(params.Limit)
	list := &List{}
	if len(rows) > normalized {
		next := rows[normalized]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID})
		rows = rows[:normalized]
	}
	list.Messages = rows
	return list, nil
}

// UpdateStatus marks a message new, read, or replied.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ContactStatus) (*models.ContactMessage, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
	}

	message, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if message.Status == status {
		return message, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact status")
	}
	message.Status = status
	return message, nil
}

// Delete removes a message.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact message")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message id is required")
	}
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact message not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact message")
	}
	return message, nil
}

func validServiceType(value string) bool {
	for _, candidate := range ServiceTypes {
		if strings.EqualFold(candidate, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
