package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "events:/events", []byte(`[]`), time.Minute))
	require.NoError(t, m.Set(ctx, "banks:/payment/banks", []byte(`[1]`), 0))

	v, ok, err := m.Get(ctx, "events:/events")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), v)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "events:/events")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	now = now.Add(24 * time.Hour)
	_, ok, _ = m.Get(ctx, "banks:/payment/banks")
	assert.True(t, ok)
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'x'

	v, _, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), v)
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for _, k := range []string{"tickets:/tickets/my", "tickets:/tickets/resell", "wallet:/wallet/balance"} {
		require.NoError(t, m.Set(ctx, k, []byte("1"), time.Minute))
	}

	require.NoError(t, m.DeletePrefix(ctx, "tickets:"))
	assert.Equal(t, 1, m.Len())
	_, ok, _ := m.Get(ctx, "wallet:/wallet/balance")
	assert.True(t, ok)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "k", []byte("v"), time.Minute)
			_, _, _ = m.Get(ctx, "k")
			_ = m.DeletePrefix(ctx, "k")
		}()
	}
	wg.Wait()
}

func TestRedisStoreGetHitAndMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "")
	ctx := context.Background()

	mock.ExpectGet(DefaultNamespace + "events:/events").SetVal(`[{"id":"e1"}]`)
	mock.ExpectGet(DefaultNamespace + "events:/missing").RedisNil()

	v, ok, err := store.Get(ctx, "events:/events")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"e1"}]`, string(v))

	_, ok, err = store.Get(ctx, "events:/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreGetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "ns:")

	mock.ExpectGet("ns:k").SetErr(errors.New("connection refused"))

	_, ok, err := store.Get(context.Background(), "k")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "ns:")

	mock.ExpectSet("ns:wallet:/wallet/balance", `{"balance":10}`, time.Minute).SetVal("OK")

	require.NoError(t, store.Set(context.Background(), "wallet:/wallet/balance", []byte(`{"balance":10}`), time.Minute))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Set(ctx, "otp:a@b.co", []byte("123456"), time.Minute))
	require.NoError(t, m.Set(ctx, "otp:a@b.com", []byte("654321"), time.Minute))
	require.NoError(t, m.Delete(ctx, "otp:a@b.co"))
	assert.Equal(t, 1, m.Len())

	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "ns:")
	mock.ExpectDel("ns:otp:a@b.co").SetVal(1)
	require.NoError(t, store.Delete(ctx, "otp:a@b.co"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreDeletePrefixScansAllPages(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "ns:")

	mock.ExpectScan(0, "ns:tickets:*", scanCount).SetVal([]string{"ns:tickets:/tickets/my"}, 7)
	mock.ExpectDel("ns:tickets:/tickets/my").SetVal(1)
	mock.ExpectScan(7, "ns:tickets:*", scanCount).SetVal([]string{}, 0)

	require.NoError(t, store.DeletePrefix(context.Background(), "tickets:"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStorePing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "")

	mock.ExpectPing().SetErr(errors.New("connection failed"))

	err := store.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis health check failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
