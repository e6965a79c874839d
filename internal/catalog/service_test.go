package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
)

type fakeRepo struct {
	products map[string]models.Product
}

func (f *fakeRepo) WithTx(*gorm.DB) Repository { return f }

func (f *fakeRepo) ListActive(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	if p, ok := f.products[slug]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(products map[string]models.Product) Service {
	svc, err := NewService(&fakeRepo{products: products})
	if err != nil {
		panic(err)
	}
	return svc
}

func TestGetBySlug(t *testing.T) {
	svc := newTestService(map[string]models.Product{
		"stickers": {Slug: "stickers", Name: "Stickers"},
	})

	product, err := svc.GetBySlug(context.Background(), "stickers")
	require.NoError(t, err)
	assert.Equal(t, "Stickers", product.Name)

	_, err = svc.GetBySlug(context.Background(), "skywriting")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.GetBySlug(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestBasePriceUnknownSlugIsEmptyNotError(t *testing.T) {
	svc := newTestService(map[string]models.Product{
		"stickers": {Slug: "stickers", BasePrice: decimal.NewNullDecimal(decimal.NewFromInt(100))},
	})

	price, err := svc.BasePrice(context.Background(), "stickers")
	require.NoError(t, err)
	require.True(t, price.Valid)
	assert.True(t, price.Decimal.Equal(decimal.NewFromInt(100)))

	price, err = svc.BasePrice(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, price.Valid)
}
