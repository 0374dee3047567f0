package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/techstore/admin-manager/internal/dependency"
)

type adminStore struct {
	*MYSQLStore
}

// Admin returns an object implementing the Admin interface.
func (ms *MYSQLStore) Admin() dependency.Admin {
	return &adminStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) AddAdmin(ctx context.Context, un, pwHash string) error {
	err := ExecNamed(ctx, ms.db, `
		INSERT INTO admins (username, password_hash) VALUES (:username, :passwordHash)`,
		map[string]any{"username": un, "passwordHash": pwHash})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return fmt.Errorf("admin %q already exists", un)
		}
		return fmt.Errorf("can't add admin: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteAdmin(ctx context.Context, username string) error {
	err := ExecNamed(ctx, ms.db, `DELETE FROM admins WHERE username = :username`,
		map[string]any{"username": username})
	if err != nil {
		return fmt.Errorf("can't delete admin: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) ChangePassword(ctx context.Context, un, newHash string) error {
	err := ExecNamed(ctx, ms.db, `
		UPDATE admins SET password_hash = :passwordHash WHERE username = :username`,
		map[string]any{"username": un, "passwordHash": newHash})
	if err != nil {
		return fmt.Errorf("can't change password: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) PasswordHashByUsername(ctx context.Context, un string) (string, error) {
	var hash string
	row := ms.db.QueryRowxContext(ctx, `SELECT password_hash FROM admins WHERE username = ?`, un)
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("admin %q not found", un)
		}
		return "", fmt.Errorf("can't get password hash: %w", err)
	}
	return hash, nil
}

type customerStore struct {
	*MYSQLStore
}

// Customers returns an object implementing the Customers interface.
func (ms *MYSQLStore) Customers() dependency.Customers {
	return &customerStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) CountCustomers(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.db, `SELECT COUNT(*) FROM customer`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("can't count customers: %w", err)
	}
	return count, nil
}
