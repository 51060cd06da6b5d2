package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"NudgePrototype/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := Open(context.Background(), dsn, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Now().Truncate(time.Millisecond)

	require.NoError(t, s.Record(ctx, models.Record{SessionID: "s1", Kind: models.RecordScreen, Detail: "radar", CreatedAt: base}))
	require.NoError(t, s.Record(ctx, models.Record{SessionID: "s1", UserID: "user-2", Kind: models.RecordNudge, Detail: "you_nudged", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, s.Record(ctx, models.Record{SessionID: "s2", Kind: models.RecordScreen}))

	got, err := s.RecordsBySession(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.RecordNudge, got[0].Kind)
	assert.Equal(t, "user-2", got[0].UserID)
	assert.Equal(t, base.Add(time.Second).UnixMilli(), got[0].CreatedAt.UnixMilli())
	assert.Empty(t, got[1].UserID)
	assert.NotEmpty(t, got[1].ID)

	limited, err := s.RecordsBySession(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDeleteSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(ctx, models.Record{SessionID: "gone", Kind: models.RecordNudge}))
	}
	require.NoError(t, s.Record(ctx, models.Record{SessionID: "kept", Kind: models.RecordNudge}))

	n, err := s.DeleteSession(ctx, "gone")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := s.RecordsBySession(ctx, "gone", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	kept, err := s.RecordsBySession(ctx, "kept", 0)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
