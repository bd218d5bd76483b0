package grocery

import (
	"context"
	"errors"
	"testing"
	"time"
)

type staticSuppliers map[string]bool

func (s staticSuppliers) SupplierActive(_ context.Context, uid string) (bool, error) {
	return s[uid], nil
}

func newTestService(suppliers SupplierDirectory) (*Service, *MemoryStore) {
	store := NewMemoryStore(suppliers)
	svc := NewService(store)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc, store
}

func mustGrocery(t *testing.T, svc *Service, name string) Grocery {
	t.Helper()
	g, err := svc.CreateGrocery(context.Background(), GroceryRequest{Name: name, Location: "downtown"})
	if err != nil {
		t.Fatalf("create grocery: %v", err)
	}
	return g
}

func TestCreateItem_RequiresActiveGrocery(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	g := mustGrocery(t, svc, "G-1")

	if _, err := svc.CreateItem(ctx, g.UID, ItemRequest{Name: "Milk", Price: 2.5}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := svc.DeleteGrocery(ctx, g.UID); err != nil {
		t.Fatalf("delete grocery: %v", err)
	}
	if _, err := svc.CreateItem(ctx, g.UID, ItemRequest{Name: "Bread", Price: 1.2}); !errors.Is(err, ErrGroceryInactive) {
		t.Fatalf("expected ErrGroceryInactive, got %v", err)
	}
	if _, err := svc.CreateItem(ctx, "missing", ItemRequest{Name: "Bread", Price: 1.2}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown grocery, got %v", err)
	}
}

func TestDeleteGrocery_HidesFromListingsAndOwnership(t *testing.T) {
	svc, store := newTestService(staticSuppliers{"sup-1": true})
	ctx := context.Background()
	g := mustGrocery(t, svc, "G-1")

	it, err := svc.CreateItem(ctx, g.UID, ItemRequest{Name: "Milk", Price: 2.5})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := store.Assign(ctx, "sup-1", g.UID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if owner, ok, _ := store.GroceryOf(ctx, it.UID); !ok || owner != g.UID {
		t.Fatalf("expected item to resolve to %s, got %q ok=%v", g.UID, owner, ok)
	}
	if ok, _ := store.IsResponsible(ctx, "sup-1", g.UID); !ok {
		t.Fatalf("expected responsibility edge to hold")
	}

	if err := svc.DeleteGrocery(ctx, g.UID); err != nil {
		t.Fatalf("delete grocery: %v", err)
	}

	list, err := svc.ListGroceries(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no active groceries, got %d %v", len(list), err)
	}
	if _, err := svc.GetGrocery(ctx, g.UID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after soft delete, got %v", err)
	}
	if _, ok, _ := store.GroceryOf(ctx, it.UID); ok {
		t.Fatalf("item of a deleted grocery must not resolve")
	}
	if ok, _ := store.IsResponsible(ctx, "sup-1", g.UID); ok {
		t.Fatalf("responsibility must lapse when the grocery is deleted")
	}
}

func TestDeleteItem_DropsFromOwnershipIndex(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()
	g := mustGrocery(t, svc, "G-1")

	it, err := svc.CreateItem(ctx, g.UID, ItemRequest{Name: "Milk", Price: 2.5})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := svc.DeleteItem(ctx, it.UID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	if _, err := svc.GetItem(ctx, it.UID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after soft delete, got %v", err)
	}
	items, err := svc.ListItems(ctx, g.UID)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty listing, got %d %v", len(items), err)
	}
	if _, ok, _ := store.GroceryOf(ctx, it.UID); ok {
		t.Fatalf("deleted item must not resolve to a grocery")
	}
}

func TestIsResponsible_RequiresActiveSupplier(t *testing.T) {
	suppliers := staticSuppliers{"sup-1": true}
	svc, store := newTestService(suppliers)
	ctx := context.Background()
	g := mustGrocery(t, svc, "G-1")

	if err := store.Assign(ctx, "sup-1", g.UID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if ok, _ := store.IsResponsible(ctx, "sup-1", g.UID); !ok {
		t.Fatalf("expected active supplier to be responsible")
	}

	suppliers["sup-1"] = false
	if ok, _ := store.IsResponsible(ctx, "sup-1", g.UID); ok {
		t.Fatalf("deactivated supplier must not stay responsible")
	}
}

func TestIncomes_DateRangeAndValidation(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	g := mustGrocery(t, svc, "G-1")

	for _, d := range []string{"2026-08-01", "2026-08-15", "2026-08-29"} {
		if _, err := svc.AddIncome(ctx, g.UID, IncomeRequest{Amount: 100, Date: d}); err != nil {
			t.Fatalf("add income %s: %v", d, err)
		}
	}

	if _, err := svc.AddIncome(ctx, g.UID, IncomeRequest{Amount: 100, Date: "29/08/2026"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad date, got %v", err)
	}
	if _, err := svc.AddIncome(ctx, g.UID, IncomeRequest{Amount: -1, Date: "2026-08-29"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative amount, got %v", err)
	}

	in, err := svc.ListIncomes(ctx, g.UID, "2026-08-10", "2026-08-20")
	if err != nil {
		t.Fatalf("list incomes: %v", err)
	}
	if len(in) != 1 || in[0].Date != "2026-08-15" {
		t.Fatalf("expected single mid-month income, got %+v", in)
	}

	all, err := svc.ListIncomes(ctx, g.UID, "", "")
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 incomes, got %d %v", len(all), err)
	}
}
