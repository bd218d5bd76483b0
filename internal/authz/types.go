package authz

import "net/http"

// Action is what the caller wants to do to a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ActionForMethod maps an HTTP method to an Action. Safe methods are reads.
func ActionForMethod(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	case http.MethodPost:
		return ActionCreate
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate
	case http.MethodDelete:
		return ActionDelete
	default:
		return Action(method)
	}
}

// Decision is the outcome of a check. Deny carries no detail: missing,
// soft-deleted and foreign resources all produce the same value.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

type ResourceKind string

const (
	KindGrocery ResourceKind = "grocery"
	KindItem    ResourceKind = "item"
	KindIncome  ResourceKind = "income"
)

// Resource is a tagged reference to the object being acted on.
// GroceryUID is set when the owning grocery is already known from the
// request path (income records, item creation under a grocery); item
// references by uid are resolved through the OwnershipIndex instead.
type Resource struct {
	Kind       ResourceKind
	UID        string
	GroceryUID string
}

func GroceryResource(uid string) Resource {
	return Resource{Kind: KindGrocery, UID: uid}
}

func ItemResource(uid string) Resource {
	return Resource{Kind: KindItem, UID: uid}
}

func ItemInGrocery(groceryUID string) Resource {
	return Resource{Kind: KindItem, GroceryUID: groceryUID}
}

func IncomeResource(groceryUID string) Resource {
	return Resource{Kind: KindIncome, GroceryUID: groceryUID}
}
