package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery-platform/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

type fakeAssigner struct {
	assigned [][2]string
}

func (f *fakeAssigner) Assign(_ context.Context, supplierUID, groceryUID string) error {
	f.assigned = append(f.assigned, [2]string{supplierUID, groceryUID})
	return nil
}

func (f *fakeAssigner) Unassign(_ context.Context, supplierUID, groceryUID string) error {
	return nil
}

func newTestService() (*Service, *MemoryStore, *fakeAssigner) {
	store := NewMemoryStore()
	assign := &fakeAssigner{}
	svc := NewService(store, assign)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc, store, assign
}

func TestCreate_NormalizesEmailAndHashesPassword(t *testing.T) {
	svc, _, _ := newTestService()

	u, err := svc.Create(context.Background(), CreateRequest{
		Name:     " Sam ",
		Email:    " Sam@Supply.COM ",
		Password: "hunter22",
		Role:     auth.RoleSupplier,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "sam@supply.com" || u.Name != "Sam" {
		t.Fatalf("unexpected normalization: %+v", u)
	}
	if !u.Active {
		t.Fatalf("expected new user active")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	req := CreateRequest{Name: "A", Email: "a@b.com", Password: "password1", Role: auth.RoleAdmin}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []CreateRequest{
		{Name: "", Email: "a@b.com", Password: "password1", Role: auth.RoleAdmin},
		{Name: "A", Email: "not-an-email", Password: "password1", Role: auth.RoleAdmin},
		{Name: "A", Email: "a@b.com", Password: "short", Role: auth.RoleAdmin},
		{Name: "A", Email: "a@b.com", Password: "password1", Role: "AUDITOR"},
	}
	for i, req := range cases {
		if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}

func TestCreateSupplier_AssignsResponsibility(t *testing.T) {
	svc, _, assign := newTestService()

	u, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{
		Name:       "Sam",
		Email:      "sam@supply.com",
		Password:   "hunter22",
		GroceryUID: "g1",
	})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	if u.Role != auth.RoleSupplier {
		t.Fatalf("expected supplier role, got %q", u.Role)
	}
	if len(assign.assigned) != 1 || assign.assigned[0] != [2]string{u.UID, "g1"} {
		t.Fatalf("expected responsibility edge, got %v", assign.assigned)
	}
}

func TestSoftDelete_DeactivatesDirectoryLookups(t *testing.T) {
	svc, store, _ := newTestService()

	u, err := svc.Create(context.Background(), CreateRequest{
		Name: "Sam", Email: "sam@supply.com", Password: "hunter22", Role: auth.RoleSupplier,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SoftDelete(context.Background(), u.UID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	dir := NewDirectory(store)
	du, ok, err := dir.FindByID(context.Background(), u.UID)
	if err != nil || !ok {
		t.Fatalf("expected user still findable, got %v %v", ok, err)
	}
	if du.Active {
		t.Fatalf("expected inactive after soft delete")
	}
	active, err := dir.SupplierActive(context.Background(), u.UID)
	if err != nil || active {
		t.Fatalf("expected SupplierActive false, got %v %v", active, err)
	}
}

func TestUpsertAdmin_Idempotent(t *testing.T) {
	svc, store, _ := newTestService()

	first, created, err := svc.UpsertAdmin(context.Background(), "Super Admin", "admin@example.com", "Admin@123")
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}

	second, created, err := svc.UpsertAdmin(context.Background(), "Renamed Admin", "Admin@Example.com ", "NewPass@123")
	if err != nil || created {
		t.Fatalf("expected update of existing admin, got created=%v err=%v", created, err)
	}
	if second.UID != first.UID {
		t.Fatalf("upsert must keep the uid stable")
	}
	if second.Name != "Renamed Admin" || second.Role != auth.RoleAdmin || !second.Active {
		t.Fatalf("unexpected upserted admin: %+v", second)
	}

	all, err := store.List(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected exactly one account, got %d %v", len(all), err)
	}
}

func TestAssignResponsibility_RequiresSupplierRole(t *testing.T) {
	svc, _, _ := newTestService()

	u, err := svc.Create(context.Background(), CreateRequest{
		Name: "Boss", Email: "boss@x.com", Password: "password1", Role: auth.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AssignResponsibility(context.Background(), u.UID, "g1"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for non-supplier, got %v", err)
	}
}
