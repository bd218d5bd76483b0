package grocery

import "time"

// Grocery is a store location. Soft-deleted groceries stay in
// persistence with Active=false and fall out of ownership lookups.
type Grocery struct {
	UID       string    `db:"uid" json:"uid"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	Active    bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Item is a stocked product belonging to exactly one grocery.
type Item struct {
	UID        string    `db:"uid" json:"uid"`
	GroceryUID string    `db:"grocery_uid" json:"grocery_id"`
	Name       string    `db:"name" json:"name"`
	Type       string    `db:"type" json:"type"`
	Location   string    `db:"location" json:"location"`
	Price      float64   `db:"price" json:"price"`
	Deleted    bool      `db:"is_deleted" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DailyIncome records one day's takings for a grocery. Date is a
// calendar day in YYYY-MM-DD form, not an instant.
type DailyIncome struct {
	UID        string    `db:"uid" json:"uid"`
	GroceryUID string    `db:"grocery_uid" json:"grocery_id"`
	Amount     float64   `db:"amount" json:"amount"`
	Date       string    `db:"income_date" json:"date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
