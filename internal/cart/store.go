// Package cart holds per-session shopping carts and their change
// notifications.
package cart

import (
	"sync"

	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Item is a product plus the quantity the shopper wants. Quantity is always >= 1.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity using the stored product price.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Snapshot is a consistent view of the cart at one instant.
type Snapshot struct {
	Items      []Item          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Event is delivered to listeners after every change.
type Event struct {
	Type      enums.CartEvent
	ProductID string
	Snapshot  Snapshot
}

// Listener observes cart changes. Listeners run synchronously on the
// mutating goroutine and must not mutate the same cart.
type Listener func(Event)

// Store is one shopper's cart. All methods are safe for concurrent use.
type Store struct {
	// notifyMu orders mutation+notification pairs; mu guards the state.
	notifyMu sync.Mutex
	mu       sync.Mutex

	items     []Item
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{listeners: map[uint64]Listener{}}
}

// AddItem increments the product's quantity, or appends it with quantity 1.
// Stock is not checked here.
func (s *Store) AddItem(product catalog.Product) {
	s.mutate(enums.CartEventItemAdded, product.ID, func() bool {
		if i := s.indexOf(product.ID); i >= 0 {
			s.items[i].Quantity++
			return true
		}
		s.items = append(s.items, Item{Product: product.Clone(), Quantity: 1})
		return true
	})
}

// RemoveItem deletes the entry for id. Absent ids are ignored.
func (s *Store) RemoveItem(id string) {
	s.mutate(enums.CartEventItemRemoved, id, func() bool {
		return s.removeLocked(id)
	})
}

// UpdateQuantity sets the quantity for id; quantity <= 0 removes the entry.
// Absent ids are ignored.
func (s *Store) UpdateQuantity(id string, quantity int) {
	event := enums.CartEventQuantityUpdated
	if quantity <= 0 {
		event = enums.CartEventItemRemoved
	}
	s.mutate(event, id, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		if quantity <= 0 {
			return s.removeLocked(id)
		}
		if s.items[i].Quantity == quantity {
			return false
		}
		s.items[i].Quantity = quantity
		return true
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate(enums.CartEventCleared, "", func() bool {
		if len(s.items) == 0 {
			return false
		}
		s.items = nil
		return true
	})
}

// Restore replaces the contents with items, merging duplicate ids and
// dropping non-positive quantities.
func (s *Store) Restore(items []Item) {
	s.mutate(enums.CartEventRestored, "", func() bool {
		s.items = nil
		for _, item := range items {
			if item.Quantity < 1 {
				continue
			}
			if i := s.indexOf(item.ID); i >= 0 {
				s.items[i].Quantity += item.Quantity
				continue
			}
			s.items = append(s.items, Item{Product: item.Product.Clone(), Quantity: item.Quantity})
		}
		return true
	})
}

// Items returns the entries in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// IsEmpty reports whether the cart has no entries.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItemsLocked()
}

// TotalPrice is Σ price × quantity.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPriceLocked()
}

// Snapshot returns items and totals read under a single lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers listener and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, candidate := range s.order {
				if candidate == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) mutate(event enums.CartEvent, productID string, apply func() bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	changed := apply()
	var (
		snapshot  Snapshot
		listeners []Listener
	)
	if changed {
		snapshot = s.snapshotLocked()
		listeners = make([]Listener, 0, len(s.order))
		for _, id := range s.order {
			listeners = append(listeners, s.listeners[id])
		}
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(Event{Type: event, ProductID: productID, Snapshot: snapshot})
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store) itemsLocked() []Item {
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = Item{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	return out
}

func (s *Store) totalItemsLocked() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) totalPriceLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:      s.itemsLocked(),
		TotalItems: s.totalItemsLocked(),
		TotalPrice: s.totalPriceLocked(),
	}
}
