// Package cart owns the authoritative (product, quantity) list for a
// shopping session. Every mutation rewrites a single durable snapshot
// of the whole cart; derived totals are recomputed on every read.
package cart

import (
	"errors"
	"sync"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
)

// ErrSnapshotCorrupt reports a stored cart snapshot that could not be
// parsed. The cart recovers to empty; the error is a notice, not a
// failure of construction.
var ErrSnapshotCorrupt = errors.New("cart snapshot corrupt")

// Item is one cart entry. Product is a snapshot taken at add time,
// not a live catalog reference. Quantity is always >= 1 for any entry
// observable through Manager.
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Manager is the single source of truth for one session's cart. It is
// constructed once per session and passed to consumers by reference;
// there are no package-level singletons.
type Manager struct {
	mu    sync.Mutex
	items []Item
	store SnapshotStore
}

// NewManager creates a Manager seeded from the snapshot store. A
// missing snapshot yields an empty cart. A corrupt snapshot also
// yields an empty, fully usable cart; the returned error is then
// ErrSnapshotCorrupt so the caller can surface a notice.
func NewManager(store SnapshotStore) (*Manager, error) {
	m := &Manager{store: store}

	items, err := store.Load()
	if err != nil {
		return m, err
	}
	m.items = items
	return m, nil
}

// Add merges quantity into the entry with product.ID, or appends a new
// entry. Callers must pass quantity >= 1; pass 1 for a plain "add to
// cart" click. The snapshot is rewritten before returning.
func (m *Manager) Add(product models.Product, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].Product.ID == product.ID {
			m.items[i].Quantity += quantity
			return m.persist()
		}
	}
	m.items = append(m.items, Item{Product: product, Quantity: quantity})
	return m.persist()
}

// Remove deletes the entry matching productID. Removing an absent id
// is a no-op, not an error.
func (m *Manager) Remove(productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].Product.ID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return m.persist()
		}
	}
	return nil
}

// SetQuantity sets the entry's quantity. A quantity <= 0 removes the
// entry entirely; quantity is never observably non-positive after this
// call. Absent productID is a no-op.
func (m *Manager) SetQuantity(productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			m.items = append(m.items[:i], m.items[i+1:]...)
		} else {
			m.items[i].Quantity = quantity
		}
		return m.persist()
	}
	return nil
}

// Clear empties the cart unconditionally and persists the empty
// snapshot.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	return m.persist()
}

// Items returns the cart entries in insertion order. The returned
// slice is a copy.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}

// TotalItems returns the sum of all quantities, recomputed on every
// call.
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, it := range m.items {
		total += it.Quantity
	}
	return total
}

// Subtotal returns the sum of price times quantity across entries,
// recomputed on every call.
func (m *Manager) Subtotal() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var subtotal float64
	for _, it := range m.items {
		subtotal += it.Product.Price * float64(it.Quantity)
	}
	return subtotal
}

// persist overwrites the snapshot with the full current cart.
// Callers must hold m.mu. The in-memory state is already updated when
// a persistence error is returned; such errors are non-fatal notices.
func (m *Manager) persist() error {
	return m.store.Save(m.items)
}
