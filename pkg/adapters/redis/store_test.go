package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/rehearse/pkg/adapters/redis"
	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client, "workshop")
	tests.RunCursorStoreContract(t, store)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	store := redis.NewFromClient(client, "intro", redis.WithPrefix("test:"))
	require.NoError(t, store.Save(ctx, 9))

	assert.Equal(t, "test:cursor:intro", store.Key())
	got, err := mr.Get("test:cursor:intro")
	require.NoError(t, err)
	assert.Equal(t, "9", got)
}

func TestRedisStore_DefaultName(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client, "")
	assert.Equal(t, "default", store.Name())
	assert.Equal(t, "rehearse:cursor:default", store.Key())
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	store := redis.NewFromClient(client, "ttl", redis.WithTTL(time.Minute))
	require.NoError(t, store.Save(ctx, 4))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCursorNotFound)
}

func TestRedisStore_InvalidValue(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, "bad")
	require.NoError(t, mr.Set(store.Key(), "not-a-number"))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCursorNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	store := redis.NewFromClient(client, "gone")
	require.NoError(t, store.Save(ctx, 1))
	require.NoError(t, store.Delete(ctx))
	assert.False(t, mr.Exists(store.Key()))
}

func TestNewFromURL(t *testing.T) {
	mr, _ := newClient(t)

	store, err := redis.NewFromURL("redis://"+mr.Addr()+"/0", "url")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), 2))
	assert.True(t, mr.Exists("rehearse:cursor:url"))

	_, err = redis.NewFromURL("://nope", "url")
	assert.Error(t, err)
}
