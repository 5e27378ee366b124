package cart

import (
	"context"
	"testing"
	"time"

	"github.com/esihle/storefront-backend/pkg/redis"
	"github.com/shopspring/decimal"
)

type fakeSnapshotStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSnapshotStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeSnapshotStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (f *fakeSnapshotStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeSnapshotStore) CartKey(sessionID string) string {
	return "es:cart:" + sessionID
}

func TestRedisMirrorRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshotStore()
	mirror := newRedisMirror(store, time.Hour)

	onSale := serum
	op := decimal.RequireFromString("119.99")
	onSale.OriginalPrice = &op
	onSale.Ingredients = []string{"Vitamin E"}

	if err := mirror.Save(ctx, "s1", []Item{{Product: onSale, Quantity: 2}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.ttls["es:cart:s1"] != time.Hour {
		t.Fatalf("unexpected ttl %v", store.ttls["es:cart:s1"])
	}

	items, found, err := mirror.Load(ctx, "s1")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Name != "Serum" {
		t.Fatalf("unexpected items %+v", items)
	}
	if !items[0].Price.Equal(serum.Price) || items[0].OriginalPrice == nil || !items[0].OriginalPrice.Equal(op) {
		t.Fatalf("prices did not round trip: %+v", items[0])
	}

	if err := mirror.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, err := mirror.Load(ctx, "s1"); err != nil || found {
		t.Fatalf("expected no snapshot after delete, found=%v err=%v", found, err)
	}
}

func TestRedisMirrorIgnoresForeignSnapshots(t *testing.T) {
	store := newFakeSnapshotStore()
	store.values["es:cart:s1"] = `{"v":99,"items":[]}`
	mirror := newRedisMirror(store, 0)

	if _, found, err := mirror.Load(context.Background(), "s1"); err != nil || found {
		t.Fatalf("expected unknown version to be ignored, found=%v err=%v", found, err)
	}

	store.values["es:cart:s2"] = `not json`
	if _, _, err := mirror.Load(context.Background(), "s2"); err == nil {
		t.Fatal("expected decode error")
	}
	if mirror.ttl != defaultSessionTTL {
		t.Fatalf("expected default ttl, got %v", mirror.ttl)
	}
}
