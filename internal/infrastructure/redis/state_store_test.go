package redisstore_test

import (
	"context"
	"testing"
	"time"

	"pricebot/internal/domain"
	"pricebot/internal/infrastructure/logx"
	redisstore "pricebot/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newStore(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.New(client, "pricebot:test"), mr
}

func TestStore_RoundTrip(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	st, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, st.Live)

	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, domain.State{Live: &domain.LiveMessage{ID: "42", CreatedAt: created}}))
	require.True(t, mr.Exists("pricebot:test"))

	st, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.Live)
	require.Equal(t, "42", st.Live.ID)
	require.True(t, created.Equal(st.Live.CreatedAt))

	require.NoError(t, store.Save(ctx, domain.State{}))
	require.False(t, mr.Exists("pricebot:test"))
}

func TestStore_CorruptValue(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("pricebot:test", "not-json"))
	_, err := store.Load(context.Background())
	require.Error(t, err)
}

func TestStore_Ping(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, store.Ping(context.Background()))
	mr.Close()
	require.Error(t, store.Ping(context.Background()))
}

func TestStore_SaveLogsWithContextLogger(t *testing.T) {
	store, _ := newStore(t)
	core, logs := observer.New(zap.DebugLevel)
	ctx := logx.Into(context.Background(), zap.New(core).With(zap.String("cycle_id", "c1")))

	require.NoError(t, store.Save(ctx, domain.State{Live: &domain.LiveMessage{ID: "7", CreatedAt: time.Now().UTC()}}))
	require.NoError(t, store.Save(ctx, domain.State{}))

	saved := logs.FilterMessage("redis_state_saved").All()
	require.Len(t, saved, 1)
	require.Equal(t, "c1", saved[0].ContextMap()["cycle_id"])
	require.Equal(t, "7", saved[0].ContextMap()["message_id"])
	require.Len(t, logs.FilterMessage("redis_state_cleared").All(), 1)
}
