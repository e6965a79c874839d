package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
)

// Service serves the public print-product catalog and prices order items.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	BasePrice(ctx context.Context, slug string) (decimal.NullDecimal, error)
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// List returns the active catalog in display order.
func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

// GetBySlug returns one active product.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.repo.FindBySlug(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// BasePrice returns the indicative price for a catalog slug. Unknown slugs
// yield an empty price rather than an error so order pricing stays best
// effort.
func (s *service) BasePrice(ctx context.Context, slug string) (decimal.NullDecimal, error) {
	product, err := s.GetBySlug(ctx, slug)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return decimal.NullDecimal{}, nil
		}
		return decimal.NullDecimal{}, err
	}
	return product.BasePrice, nil
}
