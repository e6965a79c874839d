package notifications

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
	"github.com/Aman2975/hugli-backend/pkg/pagination"
)

type fakeRepository struct {
	created []models.Notification
	rows    []models.Notification
	unread  int64
	read    []uuid.UUID
}

func (f *fakeRepository) WithTx(*gorm.DB) Repository { return f }

func (f *fakeRepository) Create(_ context.Context, notification *models.Notification) error {
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeRepository) List(_ context.Context, _ pagination.Params, _ bool) ([]models.Notification, error) {
	return f.rows, nil
}

func (f *fakeRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeRepository) CountUnread(context.Context) (int64, error) {
	return f.unread, nil
}

func TestOrderCreatedRecordsNotification(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	order := &models.Order{
		ID:           uuid.New(),
		CustomerName: "Asha Verma",
		Items:        []models.OrderItem{{ProductName: "Stickers", Quantity: 2}},
	}
	require.NoError(t, svc.OrderCreated(context.Background(), order))

	require.Len(t, repo.created, 1)
	assert.Equal(t, enums.NotificationKindOrderCreated, repo.created[0].Kind)
	assert.Equal(t, order.ID, repo.created[0].RefID)
	assert.Contains(t, repo.created[0].Message, "Asha Verma")
}

func TestContactReceivedRecordsNotification(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	message := &models.ContactMessage{ID: uuid.New(), Name: "Ravi"}
	require.NoError(t, svc.ContactReceived(context.Background(), message))

	require.Len(t, repo.created, 1)
	assert.Equal(t, enums.NotificationKindContactReceived, repo.created[0].Kind)
}

func TestListReturnsUnreadCountAndCursor(t *testing.T) {
	rows := make([]models.Notification, 3)
	for i := range rows {
		rows[i] = models.Notification{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute)}
	}
	repo := &fakeRepository{rows: rows, unread: 7}
	svc, err := NewService(repo)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), pagination.Params{Limit: 2}, false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, int64(7), list.UnreadCount)
	assert.NotEmpty(t, list.NextCursor)
}

func TestMarkRead(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, svc.MarkRead(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.read)

	assert.Error(t, svc.MarkRead(context.Background(), uuid.Nil))
}
