package report

import (
	"context"
	"fmt"

	"github.com/techstore/admin-manager/internal/entity"
	"golang.org/x/sync/errgroup"
)

// Counters snapshots the four global metrics in one shot. The queries run
// concurrently and the snapshot is all or nothing: one failed query fails
// the whole call, no partial result is returned.
func (s *Service) Counters(ctx context.Context) (*entity.CountersSnapshot, error) {
	var snap entity.CountersSnapshot

	var g errgroup.Group
	g.Go(func() error {
		n, err := s.orders.CountOrders(ctx)
		if err != nil {
			return fmt.Errorf("can't count orders: %w", err)
		}
		snap.Orders = n
		return nil
	})
	g.Go(func() error {
		n, err := s.products.CountProducts(ctx)
		if err != nil {
			return fmt.Errorf("can't count products: %w", err)
		}
		snap.Products = n
		return nil
	})
	g.Go(func() error {
		n, err := s.customers.CountCustomers(ctx)
		if err != nil {
			return fmt.Errorf("can't count customers: %w", err)
		}
		snap.Customers = n
		return nil
	})
	g.Go(func() error {
		sum, err := s.orders.SumOrderRevenue(ctx)
		if err != nil {
			return fmt.Errorf("can't sum revenue: %w", err)
		}
		snap.Revenue = sum
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
