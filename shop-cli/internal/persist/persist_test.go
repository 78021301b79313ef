package persist_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodiegv/domain"
	"foodiegv/shop-cli/internal/cart"
	"foodiegv/shop-cli/internal/persist"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleItems = []domain.CartItem{
	{MenuItem: domain.MenuItem{ID: "201", Name: "Classic Burger", Price: 15, Category: "Burgers"}, Quantity: 2, RestaurantID: "2"},
	{MenuItem: domain.MenuItem{ID: "301", Name: "Combo Sushi", Price: 29.9, Category: "Combinados"}, Quantity: 1, RestaurantID: "3"},
}

type failingSlot struct{ err error }

func (s failingSlot) Read(context.Context) ([]byte, error) { return nil, s.err }
func (s failingSlot) Write(context.Context, []byte) error  { return s.err }

func newRedisSlot(t *testing.T) (*persist.RedisSlot, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return persist.NewRedisSlot(client, "foodiegv-cart", 0), mr
}

func TestSlots(t *testing.T) {
	redisSlot, _ := newRedisSlot(t)

	tests := []struct {
		name string
		slot persist.Slot
	}{
		{name: "file", slot: persist.NewFileSlot(filepath.Join(t.TempDir(), "nested", "foodiegv-cart.json"))},
		{name: "redis", slot: redisSlot},
		{name: "memory", slot: persist.NewMemorySlot()},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()

			_, err := testCase.slot.Read(ctx)
			assert.ErrorIs(t, err, persist.ErrSlotEmpty)

			require.NoError(t, testCase.slot.Write(ctx, []byte(`[1]`)))
			require.NoError(t, testCase.slot.Write(ctx, []byte(`[]`)))

			data, err := testCase.slot.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), data)
		})
	}
}

func TestRedisSlot_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	slot := persist.NewRedisSlot(client, "cart:test", time.Hour)

	require.NoError(t, slot.Write(context.Background(), []byte(`[]`)))

	assert.Equal(t, time.Hour, mr.TTL("cart:test"))
	mr.FastForward(2 * time.Hour)
	_, err := slot.Read(context.Background())
	assert.ErrorIs(t, err, persist.ErrSlotEmpty)
}

func TestRedisSlot_Unavailable(t *testing.T) {
	slot, mr := newRedisSlot(t)
	mr.Close()

	_, err := slot.Read(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, persist.ErrSlotEmpty)
}

func TestBridge_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bridge := persist.NewBridge(persist.NewMemorySlot(), log.New(&bytes.Buffer{}, "", 0), time.Second)

	bridge.Save(ctx, sampleItems)
	items, ok := bridge.Load(ctx)

	require.True(t, ok)
	assert.Equal(t, sampleItems, items)
}

func TestBridge_Load(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		expectOK    bool
		expectItems int
		expectLog   string
	}{
		{name: "empty_array", stored: `[]`, expectOK: true, expectItems: 0},
		{name: "returns_entries_as_stored", stored: `[{"menuItem":{"id":"1","price":2},"quantity":0,"restaurantId":"r"},{"menuItem":{"id":"2","price":2},"quantity":3,"restaurantId":"r"},{"menuItem":{"id":"3"},"quantity":-1,"restaurantId":"r"}]`, expectOK: true, expectItems: 3},
		{name: "malformed", stored: `{not json`, expectLog: "malformed"},
		{name: "object", stored: `{"items":[]}`, expectLog: "malformed"},
		{name: "null", stored: `null`, expectLog: "not a list"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			slot := persist.NewMemorySlot()
			require.NoError(t, slot.Write(ctx, []byte(testCase.stored)))
			var logs bytes.Buffer
			bridge := persist.NewBridge(slot, log.New(&logs, "", 0), 0)

			items, ok := bridge.Load(ctx)

			assert.Equal(t, testCase.expectOK, ok)
			if testCase.expectOK {
				assert.Len(t, items, testCase.expectItems)
				return
			}
			assert.Nil(t, items)
			assert.Contains(t, logs.String(), testCase.expectLog)
		})
	}
}

func TestBridge_Absent(t *testing.T) {
	var logs bytes.Buffer
	bridge := persist.NewBridge(persist.NewFileSlot(filepath.Join(t.TempDir(), "missing.json")), log.New(&logs, "", 0), 0)

	items, ok := bridge.Load(context.Background())

	assert.False(t, ok)
	assert.Nil(t, items)
	assert.Empty(t, logs.String())
}

func TestBridge_SwallowsSlotErrors(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	bridge := persist.NewBridge(failingSlot{err: errors.New("disk full")}, log.New(&logs, "", 0), 0)

	assert.NotPanics(t, func() { bridge.Save(ctx, sampleItems) })
	_, ok := bridge.Load(ctx)

	assert.False(t, ok)
	assert.Contains(t, logs.String(), "failed to save cart: disk full")
	assert.Contains(t, logs.String(), "failed to read saved cart: disk full")
}

func TestBridge_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	slot := persist.NewMemorySlot()

	persist.NewBridge(slot, nil, 0).Save(ctx, nil)

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBridge_FileFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "foodiegv-cart.json")
	bridge := persist.NewBridge(persist.NewFileSlot(path), nil, 0)

	bridge.Save(ctx, sampleItems[:1])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"menuItem":{"id":"201","name":"Classic Burger","description":"","price":15,"image":"","category":"Burgers"},"quantity":2,"restaurantId":"2"}]`, string(raw))
}

func TestBridge_WithCartStore(t *testing.T) {
	ctx := context.Background()
	slot, _ := newRedisSlot(t)
	bridge := persist.NewBridge(slot, nil, time.Second)

	first := cart.NewStore(bridge, nil)
	require.NoError(t, first.Hydrate(ctx))
	require.NoError(t, first.Add(ctx, sampleItems[0].MenuItem, "2"))
	require.NoError(t, first.Add(ctx, sampleItems[0].MenuItem, "2"))
	require.NoError(t, first.Close(ctx))

	second := cart.NewStore(bridge, nil)
	require.NoError(t, second.Hydrate(ctx))

	state := second.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, "30.00", state.TotalPrice().StringFixed(2))
}

func TestBridge_HydrateNormalizesStoredCart(t *testing.T) {
	ctx := context.Background()
	slot := persist.NewMemorySlot()
	require.NoError(t, slot.Write(ctx, []byte(`[
		{"menuItem":{"id":"201","price":15},"quantity":0,"restaurantId":"2"},
		{"menuItem":{"id":"201","price":15},"quantity":1,"restaurantId":"2"},
		{"menuItem":{"id":"201","price":15},"quantity":2,"restaurantId":"2"}
	]`)))
	store := cart.NewStore(persist.NewBridge(slot, nil, 0), nil)

	require.NoError(t, store.Hydrate(ctx))

	state := store.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.Equal(t, "45.00", state.TotalPrice().StringFixed(2))
}
