package cart

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/pkg/enums"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/metrics"
)

const (
	defaultSessionTTL = 2 * time.Hour
	mirrorTimeout     = 2 * time.Second
)

// Mirror persists cart snapshots outside the process.
type Mirror interface {
	Save(ctx context.Context, sessionID string, items []Item) error
	Load(ctx context.Context, sessionID string) ([]Item, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionsParams configure the session registry.
type SessionsParams struct {
	Logger  *logger.Logger
	Catalog *catalog.Store
	Mirror  Mirror
	Metrics *metrics.StorefrontMetrics
	TTL     time.Duration
}

type session struct {
	store       *Store
	lastSeen    time.Time
	unsubscribe func()
}

// Sessions maps a storefront session id to its cart.
type Sessions struct {
	mu      sync.RWMutex
	carts   map[string]*session
	logg    *logger.Logger
	catalog *catalog.Store
	mirror  Mirror
	metrics *metrics.StorefrontMetrics
	ttl     time.Duration
	now     func() time.Time
}

// NewSessions builds an empty registry.
func NewSessions(params SessionsParams) *Sessions {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Sessions{
		carts:   map[string]*session{},
		logg:    logg,
		catalog: params.Catalog,
		mirror:  params.Mirror,
		metrics: params.Metrics,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Cart returns the cart for sessionID, creating it (and rehydrating it from
// the mirror when one is configured) on first use.
func (s *Sessions) Cart(ctx context.Context, sessionID string) *Store {
	now := s.now()

	s.mu.RLock()
	existing, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		s.touch(existing, now)
		return existing.store
	}

	store := NewStore()
	s.rehydrate(ctx, sessionID, store)

	s.mu.Lock()
	if existing, ok := s.carts[sessionID]; ok {
		s.mu.Unlock()
		s.touch(existing, now)
		return existing.store
	}
	entry := &session{store: store, lastSeen: now}
	entry.unsubscribe = store.Subscribe(s.listener(sessionID))
	s.carts[sessionID] = entry
	active := len(s.carts)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(active)
	return store
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were removed.
// Mirrored snapshots expire on their own TTL.
func (s *Sessions) Sweep(ctx context.Context) int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	expired := []string{}
	for id, entry := range s.carts {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	unsubscribes := make([]func(), 0, len(expired))
	for _, id := range expired {
		unsubscribes = append(unsubscribes, s.carts[id].unsubscribe)
		delete(s.carts, id)
	}
	active := len(s.carts)
	s.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	s.metrics.SetActiveSessions(active)
	if len(expired) > 0 {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"expired": len(expired),
			"active":  active,
		}), "cart sessions swept")
	}
	return len(expired)
}

func (s *Sessions) touch(entry *session, now time.Time) {
	s.mu.Lock()
	if now.After(entry.lastSeen) {
		entry.lastSeen = now
	}
	s.mu.Unlock()
}

func (s *Sessions) rehydrate(ctx context.Context, sessionID string, store *Store) {
	if s.mirror == nil {
		return
	}
	ctx = s.logg.WithSessionID(ctx, sessionID)
	items, found, err := s.mirror.Load(ctx, sessionID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot load failed; starting empty")
		return
	}
	if !found {
		return
	}
	items = s.refresh(items)
	if len(items) == 0 {
		return
	}
	store.Restore(items)
	s.metrics.IncCartMutation(enums.CartEventRestored.String())
	s.logg.Info(s.logg.WithField(ctx, "items", len(items)), "cart restored from snapshot")
}

// refresh swaps snapshot product data for the current catalog entry and
// drops products the catalog no longer carries.
func (s *Sessions) refresh(items []Item) []Item {
	if s.catalog == nil {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		product, ok := s.catalog.Get(item.ID)
		if !ok {
			continue
		}
		out = append(out, Item{Product: product, Quantity: item.Quantity})
	}
	return out
}

func (s *Sessions) listener(sessionID string) Listener {
	return func(ev Event) {
		s.metrics.IncCartMutation(ev.Type.String())
		if s.mirror == nil {
			return
		}
		ctx, cancel := context.WithTimeout(s.logg.WithSessionID(context.Background(), sessionID), mirrorTimeout)
		defer cancel()

		var err error
		if len(ev.Snapshot.Items) == 0 {
			err = s.mirror.Delete(ctx, sessionID)
		} else {
			err = s.mirror.Save(ctx, sessionID, ev.Snapshot.Items)
		}
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot mirror failed")
		}
	}
}
