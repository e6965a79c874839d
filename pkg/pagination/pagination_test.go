package pagination_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman2975/hugli-backend/pkg/pagination"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, pagination.DefaultLimit, pagination.NormalizeLimit(0))
	assert.Equal(t, pagination.DefaultLimit, pagination.NormalizeLimit(-5))
	assert.Equal(t, 40, pagination.NormalizeLimit(40))
	assert.Equal(t, pagination.MaxLimit, pagination.NormalizeLimit(5000))
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := pagination.Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	encoded := pagination.EncodeCursor(cursor)
	parsed, err := pagination.ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, parsed.CreatedAt.Equal(cursor.CreatedAt))
	assert.Equal(t, cursor.ID, parsed.ID)
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	parsed, err := pagination.ParseCursor("   ")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = pagination.ParseCursor("not-base64!!")
	assert.Error(t, err)

	_, err = pagination.ParseCursor("bm8tcGlwZS1oZXJl")
	assert.Error(t, err)
}

func TestTrimPage(t *testing.T) {
	rows := []int{1, 2, 3, 4}

	page, hasMore := pagination.TrimPage(rows, 3)
	assert.Equal(t, []int{1, 2, 3}, page)
	assert.True(t, hasMore)

	page, hasMore = pagination.TrimPage(rows, 10)
	assert.Equal(t, rows, page)
	assert.False(t, hasMore)
}
