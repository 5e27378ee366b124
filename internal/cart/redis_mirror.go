package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/esihle/storefront-backend/pkg/redis"
)

const snapshotVersion = 1

type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

type snapshotPayload struct {
	Version int    `json:"v"`
	Items   []Item `json:"items"`
	SavedAt int64  `json:"saved_at"`
}

// RedisMirror stores cart snapshots as JSON under es:cart:<session>.
type RedisMirror struct {
	client snapshotStore
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisMirror builds a mirror whose snapshots expire after ttl.
func NewRedisMirror(client *redis.Client, ttl time.Duration) *RedisMirror {
	return newRedisMirror(client, ttl)
}

func newRedisMirror(client snapshotStore, ttl time.Duration) *RedisMirror {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisMirror{client: client, ttl: ttl, now: time.Now}
}

// Save writes the snapshot, refreshing its TTL.
func (m *RedisMirror) Save(ctx context.Context, sessionID string, items []Item) error {
	data, err := json.Marshal(snapshotPayload{Version: snapshotVersion, Items: items, SavedAt: m.now().Unix()})
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := m.client.Set(ctx, m.client.CartKey(sessionID), string(data), m.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot; found is false when none exists.
func (m *RedisMirror) Load(ctx context.Context, sessionID string) ([]Item, bool, error) {
	raw, err := m.client.Get(ctx, m.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load cart snapshot: %w", err)
	}
	var payload snapshotPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false, fmt.Errorf("decode cart snapshot: %w", err)
	}
	if payload.Version != snapshotVersion {
		return nil, false, nil
	}
	return payload.Items, true, nil
}

// Delete removes the snapshot.
func (m *RedisMirror) Delete(ctx context.Context, sessionID string) error {
	if err := m.client.Del(ctx, m.client.CartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
