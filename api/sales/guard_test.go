package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuerier struct {
	row fakeRow
}

func (q stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.row
}

func TestExistsForDay(t *testing.T) {
	exists, err := ExistsForDay(context.Background(), stubQuerier{fakeRow{count: 3}}, "Centro", 2025, 3, 14)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ExistsForDay(context.Background(), stubQuerier{fakeRow{count: 0}}, "Centro", 2025, 3, 14)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsForMonth(t *testing.T) {
	exists, err := ExistsForMonth(context.Background(), stubQuerier{fakeRow{count: 1}}, "Centro", 2025, 3)
	require.NoError(t, err)
	assert.True(t, exists, "a single loaded day blocks the whole month")

	exists, err = ExistsForMonth(context.Background(), stubQuerier{fakeRow{count: 0}}, "Centro", 2025, 3)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsQueryError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := ExistsForDay(context.Background(), stubQuerier{fakeRow{err: boom}}, "Centro", 2025, 3, 14)
	require.ErrorIs(t, err, boom)

	_, err = ExistsForMonth(context.Background(), stubQuerier{fakeRow{err: boom}}, "Centro", 2025, 3)
	require.ErrorIs(t, err, boom)
}
