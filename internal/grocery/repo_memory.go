package grocery

import (
	"context"
	"sort"
	"sync"
)

// SupplierDirectory is the slice of the user directory the ownership
// index needs: whether a uid is an active supplier.
type SupplierDirectory interface {
	SupplierActive(ctx context.Context, uid string) (bool, error)
}

// MemoryStore is the in-memory backend used for development and
// tests. It also serves as the ownership index and holds the
// supplier->grocery responsibility edges.
type MemoryStore struct {
	mu        sync.RWMutex
	groceries map[string]Grocery
	items     map[string]Item
	incomes   map[string][]DailyIncome
	edges     map[[2]string]bool // [supplierUID, groceryUID]

	suppliers SupplierDirectory
}

func NewMemoryStore(suppliers SupplierDirectory) *MemoryStore {
	return &MemoryStore{
		groceries: make(map[string]Grocery),
		items:     make(map[string]Item),
		incomes:   make(map[string][]DailyIncome),
		edges:     make(map[[2]string]bool),
		suppliers: suppliers,
	}
}

func (m *MemoryStore) InsertGrocery(_ context.Context, g Grocery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groceries[g.UID] = g
	return nil
}

func (m *MemoryStore) GetGrocery(_ context.Context, uid string) (Grocery, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groceries[uid]
	return g, ok, nil
}

func (m *MemoryStore) ListGroceries(_ context.Context) ([]Grocery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Grocery, 0, len(m.groceries))
	for _, g := range m.groceries {
		if g.Active {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (m *MemoryStore) UpdateGrocery(_ context.Context, g Grocery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groceries[g.UID]; !ok {
		return ErrNotFound
	}
	m.groceries[g.UID] = g
	return nil
}

func (m *MemoryStore) InsertItem(_ context.Context, it Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.UID] = it
	return nil
}

func (m *MemoryStore) GetItem(_ context.Context, uid string) (Item, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[uid]
	return it, ok, nil
}

func (m *MemoryStore) ListItems(_ context.Context, groceryUID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Item
	for _, it := range m.items {
		if it.GroceryUID == groceryUID && !it.Deleted {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (m *MemoryStore) UpdateItem(_ context.Context, it Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[it.UID]; !ok {
		return ErrNotFound
	}
	m.items[it.UID] = it
	return nil
}

func (m *MemoryStore) InsertIncome(_ context.Context, in DailyIncome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incomes[in.GroceryUID] = append(m.incomes[in.GroceryUID], in)
	return nil
}

func (m *MemoryStore) ListIncomes(_ context.Context, groceryUID, from, to string) ([]DailyIncome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []DailyIncome
	for _, in := range m.incomes[groceryUID] {
		if from != "" && in.Date < from {
			continue
		}
		if to != "" && in.Date > to {
			continue
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Assign implements users.ResponsibilityAssigner.
func (m *MemoryStore) Assign(_ context.Context, supplierUID, groceryUID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groceries[groceryUID]; !ok {
		return ErrNotFound
	}
	m.edges[[2]string{supplierUID, groceryUID}] = true
	return nil
}

// Unassign implements users.ResponsibilityAssigner.
func (m *MemoryStore) Unassign(_ context.Context, supplierUID, groceryUID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges, [2]string{supplierUID, groceryUID})
	return nil
}

// GroceryOf implements authz.OwnershipIndex. Soft-deleted items and
// inactive groceries do not resolve.
func (m *MemoryStore) GroceryOf(_ context.Context, itemUID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[itemUID]
	if !ok || it.Deleted {
		return "", false, nil
	}
	g, ok := m.groceries[it.GroceryUID]
	if !ok || !g.Active {
		return "", false, nil
	}
	return it.GroceryUID, true, nil
}

// IsResponsible implements authz.OwnershipIndex. The edge only holds
// while both the grocery and the supplier account are active.
func (m *MemoryStore) IsResponsible(ctx context.Context, supplierUID, groceryUID string) (bool, error) {
	m.mu.RLock()
	edge := m.edges[[2]string{supplierUID, groceryUID}]
	g, ok := m.groceries[groceryUID]
	m.mu.RUnlock()

	if !edge || !ok || !g.Active {
		return false, nil
	}
	if m.suppliers == nil {
		return true, nil
	}
	return m.suppliers.SupplierActive(ctx, supplierUID)
}
