package grocery

import (
	"context"
	"database/sql"
	"errors"

	"grocery-platform/pkg/utils"
)

// PostgresStore persists groceries, items and incomes via
// database/sql with the pgx driver. It doubles as the ownership
// index: lifecycle filters live in the queries themselves.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const groceryColumns = `uid, name, location, is_active, created_at, updated_at`

func (s *PostgresStore) InsertGrocery(ctx context.Context, g Grocery) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groceries (uid, name, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		g.UID, g.Name, g.Location, g.Active, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) GetGrocery(ctx context.Context, uid string) (Grocery, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+groceryColumns+` FROM groceries WHERE uid = $1`, uid)
	var g Grocery
	err := row.Scan(&g.UID, &g.Name, &g.Location, &g.Active, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Grocery{}, false, nil
	}
	if err != nil {
		return Grocery{}, false, err
	}
	return g, true, nil
}

func (s *PostgresStore) ListGroceries(ctx context.Context) ([]Grocery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+groceryColumns+` FROM groceries WHERE is_active ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Grocery
	for rows.Next() {
		var g Grocery
		if err := rows.Scan(&g.UID, &g.Name, &g.Location, &g.Active, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateGrocery(ctx context.Context, g Grocery) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE groceries SET name = $2, location = $3, is_active = $4, updated_at = $5
		WHERE uid = $1`,
		g.UID, g.Name, g.Location, g.Active, g.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const itemColumns = `uid, grocery_uid, name, type, location, price, is_deleted, created_at, updated_at`

func (s *PostgresStore) InsertItem(ctx context.Context, it Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (uid, grocery_uid, name, type, location, price, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		it.UID, it.GroceryUID, it.Name, it.Type, it.Location, it.Price, it.Deleted, it.CreatedAt, it.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) GetItem(ctx context.Context, uid string) (Item, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE uid = $1`, uid)
	var it Item
	err := row.Scan(&it.UID, &it.GroceryUID, &it.Name, &it.Type, &it.Location, &it.Price, &it.Deleted, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, false, nil
	}
	if err != nil {
		return Item{}, false, err
	}
	return it, true, nil
}

func (s *PostgresStore) ListItems(ctx context.Context, groceryUID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE grocery_uid = $1 AND NOT is_deleted ORDER BY created_at`, groceryUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.UID, &it.GroceryUID, &it.Name, &it.Type, &it.Location, &it.Price, &it.Deleted, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateItem(ctx context.Context, it Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET name = $2, type = $3, location = $4, price = $5, is_deleted = $6, updated_at = $7
		WHERE uid = $1`,
		it.UID, it.Name, it.Type, it.Location, it.Price, it.Deleted, it.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) InsertIncome(ctx context.Context, in DailyIncome) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_incomes (uid, grocery_uid, amount, income_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		in.UID, in.GroceryUID, in.Amount, in.Date, in.CreatedAt,
	)
	return err
}

func (s *PostgresStore) ListIncomes(ctx context.Context, groceryUID, from, to string) ([]DailyIncome, error) {
	query := `SELECT uid, grocery_uid, amount, to_char(income_date, 'YYYY-MM-DD'), created_at
		FROM daily_incomes WHERE grocery_uid = $1`
	args := []any{groceryUID}
	if from != "" {
		args = append(args, from)
		query += ` AND income_date >= $2`
	}
	if to != "" {
		args = append(args, to)
		if from != "" {
			query += ` AND income_date <= $3`
		} else {
			query += ` AND income_date <= $2`
		}
	}
	query += ` ORDER BY income_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyIncome
	for rows.Next() {
		var in DailyIncome
		if err := rows.Scan(&in.UID, &in.GroceryUID, &in.Amount, &in.Date, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// Assign implements users.ResponsibilityAssigner. The grocery is
// locked inside the transaction so the edge cannot race a delete.
func (s *PostgresStore) Assign(ctx context.Context, supplierUID, groceryUID string) error {
	return utils.WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT true FROM groceries WHERE uid = $1 FOR SHARE`, groceryUID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO responsible_for (supplier_uid, grocery_uid)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, supplierUID, groceryUID)
		return err
	})
}

// Unassign implements users.ResponsibilityAssigner.
func (s *PostgresStore) Unassign(ctx context.Context, supplierUID, groceryUID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM responsible_for WHERE supplier_uid = $1 AND grocery_uid = $2`,
		supplierUID, groceryUID)
	return err
}

// GroceryOf implements authz.OwnershipIndex. A soft-deleted item or
// inactive grocery yields no owner.
func (s *PostgresStore) GroceryOf(ctx context.Context, itemUID string) (string, bool, error) {
	var groceryUID string
	err := s.db.QueryRowContext(ctx, `
		SELECT i.grocery_uid
		FROM items i JOIN groceries g ON g.uid = i.grocery_uid
		WHERE i.uid = $1 AND NOT i.is_deleted AND g.is_active`, itemUID).Scan(&groceryUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return groceryUID, true, nil
}

// IsResponsible implements authz.OwnershipIndex. The edge holds only
// while grocery and supplier account are both active.
func (s *PostgresStore) IsResponsible(ctx context.Context, supplierUID, groceryUID string) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx, `
		SELECT true
		FROM responsible_for r
		JOIN groceries g ON g.uid = r.grocery_uid
		JOIN users u ON u.uid = r.supplier_uid
		WHERE r.supplier_uid = $1 AND r.grocery_uid = $2
		  AND g.is_active AND u.is_active AND u.role = 'SUPPLIER'`,
		supplierUID, groceryUID).Scan(&ok)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
