package admin

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/techstore/admin-manager/internal/cache"
	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/dto"
	"github.com/techstore/admin-manager/internal/entity"
	"github.com/techstore/admin-manager/internal/report"
)

const (
	cacheKeyCounters   = "counters"
	cacheKeyCategories = "categories"

	storefrontRoot     = "/"
	storefrontProducts = "/products"
)

// Server implements handlers for admin.
type Server struct {
	repo        dependency.Repository
	bucket      dependency.FileStore
	revalidator dependency.Revalidator
	reports     *report.Service

	countersCache *cache.TTL[*dto.Counters]
	categoryCache *cache.TTL[[]dto.CategoryStock]
	salesCache    *cache.TTL[[]dto.DailySales]
}

// New creates a new server with admin handlers. statsTTL bounds how stale
// the dashboard aggregates may get between recomputations.
func New(
	r dependency.Repository,
	b dependency.FileStore,
	rv dependency.Revalidator,
	reports *report.Service,
	statsTTL time.Duration,
) *Server {
	return &Server{
		repo:          r,
		bucket:        b,
		revalidator:   rv,
		reports:       reports,
		countersCache: cache.NewTTL[*dto.Counters](statsTTL),
		categoryCache: cache.NewTTL[[]dto.CategoryStock](statsTTL),
		salesCache:    cache.NewTTL[[]dto.DailySales](statsTTL),
	}
}

func (s *Server) revalidate(ctx context.Context, path string) {
	if s.revalidator == nil {
		return
	}
	if err := s.revalidator.RevalidatePath(ctx, path); err != nil {
		slog.Default().WarnContext(ctx, "can't revalidate storefront path",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
	}
}

// STATS

// Counters returns the global dashboard counters, recomputed at most once
// per cache window.
func (s *Server) Counters(ctx context.Context) (*dto.Counters, error) {
	if cached, ok := s.countersCache.Get(cacheKeyCounters); ok {
		return cached, nil
	}
	snap, err := s.reports.Counters(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get global counters",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	counters := dto.ConvertCounters(snap)
	s.countersCache.Set(cacheKeyCounters, counters)
	return counters, nil
}

// CategoryStock returns in-stock counts per tracked category.
func (s *Server) CategoryStock(ctx context.Context) ([]dto.CategoryStock, error) {
	if cached, ok := s.categoryCache.Get(cacheKeyCategories); ok {
		return cached, nil
	}
	buckets, err := s.reports.CategoryStock(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get category stock",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	stock := dto.ConvertCategoryStock(buckets)
	s.categoryCache.Set(cacheKeyCategories, stock)
	return stock, nil
}

// MonthlySales returns the per-day sales series for the given month.
func (s *Server) MonthlySales(ctx context.Context, year int, month time.Month) ([]dto.DailySales, error) {
	key := fmt.Sprintf("%d-%02d", year, int(month))
	if cached, ok := s.salesCache.Get(key); ok {
		return cached, nil
	}
	buckets, err := s.reports.MonthlySales(ctx, year, month)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get monthly sales",
			slog.String("month", key),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	series := dto.ConvertDailySales(buckets)
	s.salesCache.Set(key, series)
	return series, nil
}

// PRODUCT MANAGER

// UploadProductImage uploads a base64 encoded image and returns its public URL.
func (s *Server) UploadProductImage(ctx context.Context, rawB64Image string) (string, error) {
	url, err := s.bucket.UploadProductImage(ctx, rawB64Image, imageName())
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't upload product image",
			slog.String("err", err.Error()),
		)
		return "", err
	}
	return url, nil
}

func (s *Server) AddProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	id, err := s.repo.Products().AddProduct(ctx, req.ToEntity())
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't add product",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	pf, err := s.repo.Products().GetProductById(ctx, id)
	if err != nil {
		return nil, err
	}
	s.categoryCache.Invalidate(cacheKeyCategories)
	s.countersCache.Invalidate(cacheKeyCounters)
	s.revalidate(ctx, storefrontProducts)
	return dto.ConvertProductFull(pf), nil
}

func (s *Server) UpdateProduct(ctx context.Context, id int, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := s.repo.Products().UpdateProduct(ctx, req.ToEntity(), id); err != nil {
		slog.Default().ErrorContext(ctx, "can't update product",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	pf, err := s.repo.Products().GetProductById(ctx, id)
	if err != nil {
		return nil, err
	}
	s.categoryCache.Invalidate(cacheKeyCategories)
	s.revalidate(ctx, storefrontProducts)
	return dto.ConvertProductFull(pf), nil
}

func (s *Server) GetProduct(ctx context.Context, id int) (*dto.ProductResponse, error) {
	pf, err := s.repo.Products().GetProductById(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ConvertProductFull(pf), nil
}

func (s *Server) ListProducts(ctx context.Context, filter *entity.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.Products().ListProducts(ctx, filter)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list products",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return dto.ConvertProducts(products), nil
}

func (s *Server) SetProductFeatured(ctx context.Context, id int, featured bool) error {
	if err := s.repo.Products().SetProductFeatured(ctx, id, featured); err != nil {
		slog.Default().ErrorContext(ctx, "can't set product featured",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	s.revalidate(ctx, storefrontRoot)
	return nil
}

func (s *Server) DeleteProduct(ctx context.Context, id int) error {
	if err := s.repo.Products().DeleteProductById(ctx, id); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete product",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	s.categoryCache.Invalidate(cacheKeyCategories)
	s.countersCache.Invalidate(cacheKeyCounters)
	s.revalidate(ctx, storefrontProducts)
	return nil
}

// ORDER MANAGER

// CreateOrder is the checkout intake: inserts the order with its immutable
// line item snapshot.
func (s *Server) CreateOrder(ctx context.Context, req *dto.CheckoutOrder) (*dto.OrderResponse, error) {
	of, err := s.repo.Orders().CreateOrder(ctx, req.ToEntity())
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create order",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	s.countersCache.Invalidate(cacheKeyCounters)
	return dto.ConvertOrderFull(of), nil
}

func (s *Server) GetOrder(ctx context.Context, id int) (*dto.OrderResponse, error) {
	of, err := s.repo.Orders().GetOrderById(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ConvertOrderFull(of), nil
}

func (s *Server) ListOrders(ctx context.Context, status entity.OrderStatusName, exclude bool) ([]dto.OrderResponse, error) {
	orders, err := s.repo.Orders().ListOrdersByStatus(ctx, status, exclude)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list orders",
			slog.String("status", string(status)),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return dto.ConvertOrders(orders), nil
}

func (s *Server) UpdateOrderStatus(ctx context.Context, id int, status entity.OrderStatusName) error {
	if err := s.repo.Orders().UpdateOrderStatus(ctx, id, status); err != nil {
		slog.Default().ErrorContext(ctx, "can't update order status",
			slog.Int("id", id),
			slog.String("status", string(status)),
			slog.String("err", err.Error()),
		)
		return err
	}
	// delivered totals feed the sales chart
	if status == entity.Delivered {
		s.salesCache.Flush()
		s.countersCache.Invalidate(cacheKeyCounters)
	}
	return nil
}

func (s *Server) AssignDriver(ctx context.Context, orderId, driverId int) error {
	if _, err := s.repo.Drivers().GetDriverById(ctx, driverId); err != nil {
		return err
	}
	if err := s.repo.Orders().AssignOrderDriver(ctx, orderId, driverId); err != nil {
		slog.Default().ErrorContext(ctx, "can't assign driver",
			slog.Int("orderId", orderId),
			slog.Int("driverId", driverId),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}

func (s *Server) DeleteOrder(ctx context.Context, id int) error {
	if err := s.repo.Orders().DeleteOrderById(ctx, id); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete order",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	s.countersCache.Invalidate(cacheKeyCounters)
	return nil
}

// DRIVER MANAGER

func (s *Server) AddDriver(ctx context.Context, req *dto.DriverRequest) (*dto.DriverResponse, error) {
	id, err := s.repo.Drivers().AddDriver(ctx, req.ToEntity())
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't add driver",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	df, err := s.repo.Drivers().GetDriverById(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ConvertDriverFull(df), nil
}

func (s *Server) GetDriverByEmail(ctx context.Context, email string) (*dto.DriverResponse, error) {
	df, err := s.repo.Drivers().GetDriverByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return dto.ConvertDriverFull(df), nil
}

func (s *Server) GetDriver(ctx context.Context, id int) (*dto.DriverResponse, error) {
	df, err := s.repo.Drivers().GetDriverById(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ConvertDriverFull(df), nil
}

func (s *Server) ListDrivers(ctx context.Context) ([]dto.DriverResponse, error) {
	drivers, err := s.repo.Drivers().ListDrivers(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list drivers",
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return dto.ConvertDrivers(drivers), nil
}

func (s *Server) UpdateDriver(ctx context.Context, id int, req *dto.DriverRequest) (*dto.DriverResponse, error) {
	if err := s.repo.Drivers().UpdateDriver(ctx, req.ToEntity(), id); err != nil {
		slog.Default().ErrorContext(ctx, "can't update driver",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	df, err := s.repo.Drivers().GetDriverById(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ConvertDriverFull(df), nil
}

func (s *Server) DeleteDriver(ctx context.Context, id int) error {
	if err := s.repo.Drivers().DeleteDriverById(ctx, id); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete driver",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}
