package users

import (
	"context"
	"database/sql"
	"errors"

	"grocery-platform/internal/auth"
)

// PostgresStore persists users via database/sql with the pgx driver.
// Schema lives in internal/store/schema.sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `uid, name, email, password_hash, role, is_active, created_at, updated_at`

func (s *PostgresStore) Insert(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (uid, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.UID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) GetByUID(ctx context.Context, uid string) (User, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid)
	return scanUser(row)
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (User, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var role string
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = auth.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, u User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, is_active = $6, updated_at = $7
		WHERE uid = $1`,
		u.UID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active, u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (User, bool, error) {
	var u User
	var role string
	err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	u.Role = auth.Role(role)
	return u, true, nil
}
