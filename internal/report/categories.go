package report

import (
	"context"
	"fmt"

	"github.com/techstore/admin-manager/internal/entity"
	"golang.org/x/sync/errgroup"
)

// CategoryStock counts in-stock products for every tracked category. One
// count query per category, fanned out together; the result list preserves
// dictionary order, not completion order.
func (s *Service) CategoryStock(ctx context.Context) ([]entity.CategoryStockBucket, error) {
	return s.categoryStock(ctx, entity.AllCategories[:trackedCategoryCount])
}

func (s *Service) categoryStock(ctx context.Context, categories []entity.CategoryEnum) ([]entity.CategoryStockBucket, error) {
	buckets := make([]entity.CategoryStockBucket, len(categories))

	// plain group: every dispatched count runs to completion, a failure
	// fails the whole batch only after all have settled
	var g errgroup.Group
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			n, err := s.products.CountProductsByCategory(ctx, category)
			if err != nil {
				return fmt.Errorf("can't count products in %s: %w", category, err)
			}
			buckets[i] = entity.CategoryStockBucket{
				Category: category,
				Quantity: n,
				Fill:     entity.CategoryColor(category),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buckets, nil
}
