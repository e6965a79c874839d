package contact

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/pagination"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error)
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	listFn         func(ctx context.Context, params pagination.Params, status *enums.ContactStatus) ([]models.ContactMessage, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status enums.ContactStatus) error
}

func (f *fakeRepo) WithTx(*gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error) {
	if f.createFn != nil {
		return f.createFn(ctx, message)
	}
	message.ID = uuid.New()
	return message, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) List(ctx context.Context, params pagination.Params, status *enums.ContactStatus) ([]models.ContactMessage, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params, status)
	}
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ContactStatus) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeNotifier struct {
	messages []*models.ContactMessage
}

func (f *fakeNotifier) ContactReceived(_ context.Context, message *models.ContactMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

func newTestService(repo Repository, notify notifier) Service {
	svc, err := NewService(repo, logger.New(logger.Options{Level: logger.ParseLevel("error")}), notify)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestSubmitRequiresOnlyName(t *testing.T) {
	notify := &fakeNotifier{}
	svc := newTestService(&fakeRepo{}, notify)

	message, err := svc.Submit(context.Background(), SubmitInput{Name: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, enums.ContactStatusNew, message.Status)
	assert.Nil(t, message.Email)
	require.Len(t, notify.messages, 1)
}

func TestSubmitRejectsMissingName(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{Email: "asha@example.com"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitValidatesServiceType(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{Name: "Asha", ServiceType: "Skywriting"})
	require.Error(t, err)

	message, err := svc.Submit(ctx, SubmitInput{Name: "Asha", ServiceType: "Bill Books"})
	require.NoError(t, err)
	assert.Equal(t, "Bill Books", *message.ServiceType)
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.ContactMessage, error) {
			return &models.ContactMessage{ID: id, Name: "Asha", Status: enums.ContactStatusNew}, nil
		},
	}
	svc := newTestService(repo, nil)

	message, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.ContactStatusRead)
	require.NoError(t, err)
	assert.Equal(t, enums.ContactStatusRead, message.Status)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), enums.ContactStatus("archived"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateStatusUnknownMessage(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.ContactStatusRead)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAdminListPaginates(t *testing.T) {
	rows := make([]models.ContactMessage, 3)
	for i := range rows {
		rows[i] = models.ContactMessage{ID: uuid.New(), Name: "A", CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute)}
	}
	repo := &fakeRepo{
		listFn: func(_ context.Context, params pagination.Params, status *enums.ContactStatus) ([]models.ContactMessage, error) {
			require.NotNil(t, status)
			assert.Equal(t, enums.ContactStatusNew, *status)
			return rows, nil
		},
	}
	svc := newTestService(repo, nil)

	status := enums.ContactStatusNew
	list, err := svc.AdminList(context.Background(), pagination.Params{Limit: 2}, &status)
	require.NoError(t, err)
	assert.Len(t, list.Messages, 2)
	assert.NotEmpty(t, list.NextCursor)
}
