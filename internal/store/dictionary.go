package store

import (
	"context"
	"fmt"

	"github.com/techstore/admin-manager/internal/entity"
)

func (ms *MYSQLStore) getCategories(ctx context.Context) ([]entity.Category, error) {
	query := `SELECT id, name FROM category ORDER BY id`
	categories, err := QueryListNamed[entity.Category](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get categories: %w", err)
	}
	return categories, nil
}
