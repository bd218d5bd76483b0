package authz

import (
	"context"
	"fmt"

	"grocery-platform/internal/auth"
)

// OwnershipIndex resolves the ownership graph. Both operations are
// lifecycle-aware: soft-deleted groceries and items, and inactive
// suppliers, are invisible even when edges still physically exist.
//
// Backed by the graph store in production and by an in-memory map in
// tests; never a concern of this package.
type OwnershipIndex interface {
	// GroceryOf returns the uid of the active grocery an item belongs to.
	// ok is false when the item does not exist, is deleted, or its
	// grocery is not active.
	GroceryOf(ctx context.Context, itemUID string) (string, bool, error)

	// IsResponsible reports whether the supplier holds a responsibility
	// edge to an active grocery.
	IsResponsible(ctx context.Context, supplierUID, groceryUID string) (bool, error)
}

// Engine is the single authorization decision point. Every protected
// call site goes through Check instead of re-implementing role or
// ownership logic.
//
// Decision table, evaluated in order:
//  1. read → Allow for any authenticated principal
//  2. admin → Allow for all actions
//  3. supplier write → resolve the target grocery, then Allow iff the
//     supplier is responsible for it; grocery records themselves are
//     admin-only writes
//  4. anything else → Deny
//
// Deny never distinguishes "not found", "soft-deleted" and "not owned";
// index errors surface as errors, never as decisions.
type Engine struct {
	index OwnershipIndex
}

func NewEngine(index OwnershipIndex) *Engine {
	return &Engine{index: index}
}

func (e *Engine) Check(ctx context.Context, p auth.Principal, action Action, res Resource) (Decision, error) {
	if action == ActionRead {
		return Allow, nil
	}
	if p.Role == auth.RoleAdmin {
		return Allow, nil
	}
	if p.Role != auth.RoleSupplier {
		return Deny, nil
	}

	switch action {
	case ActionCreate, ActionUpdate, ActionDelete:
	default:
		return Deny, nil
	}

	groceryUID := res.GroceryUID
	switch res.Kind {
	case KindGrocery:
		// Suppliers never mutate grocery records, owned or not.
		return Deny, nil
	case KindItem:
		if groceryUID == "" {
			uid, ok, err := e.index.GroceryOf(ctx, res.UID)
			if err != nil {
				return Deny, fmt.Errorf("ownership lookup: %w", err)
			}
			if !ok {
				return Deny, nil
			}
			groceryUID = uid
		}
	case KindIncome:
	default:
		return Deny, nil
	}
	if groceryUID == "" {
		return Deny, nil
	}

	ok, err := e.index.IsResponsible(ctx, p.ID, groceryUID)
	if err != nil {
		return Deny, fmt.Errorf("responsibility lookup: %w", err)
	}
	if !ok {
		return Deny, nil
	}
	return Allow, nil
}
