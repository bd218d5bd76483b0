package users

import (
	"context"

	"grocery-platform/internal/auth"
)

// Directory adapts a Store to the ports the auth core and the grocery
// ownership index read users through.
type Directory struct {
	store Store
}

func NewDirectory(store Store) Directory {
	return Directory{store: store}
}

func (d Directory) FindByEmail(ctx context.Context, email string) (auth.DirectoryUser, bool, error) {
	u, ok, err := d.store.GetByEmail(ctx, email)
	if err != nil || !ok {
		return auth.DirectoryUser{}, false, err
	}
	return toDirectoryUser(u), true, nil
}

func (d Directory) FindByID(ctx context.Context, uid string) (auth.DirectoryUser, bool, error) {
	u, ok, err := d.store.GetByUID(ctx, uid)
	if err != nil || !ok {
		return auth.DirectoryUser{}, false, err
	}
	return toDirectoryUser(u), true, nil
}

// SupplierActive reports whether the uid names a usable supplier
// account. Consumed by the grocery ownership index.
func (d Directory) SupplierActive(ctx context.Context, uid string) (bool, error) {
	u, ok, err := d.store.GetByUID(ctx, uid)
	if err != nil || !ok {
		return false, err
	}
	return u.Active && u.Role == auth.RoleSupplier, nil
}

func toDirectoryUser(u User) auth.DirectoryUser {
	return auth.DirectoryUser{
		ID:           u.UID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Active:       u.Active,
	}
}
