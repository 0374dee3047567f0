package admin

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/dto"
	"github.com/techstore/admin-manager/internal/entity"
	"github.com/techstore/admin-manager/internal/report"
	"github.com/techstore/admin-manager/internal/store"
)

// fakes embed the dependency interfaces so only the methods a test exercises
// need an implementation; anything else panics loudly.

type fakeOrderStore struct {
	dependency.Orders
	countCalls int
	rangeCalls int
	lastStatus entity.OrderStatusName
	assignedTo int
}

func (f *fakeOrderStore) CountOrders(ctx context.Context) (int, error) {
	f.countCalls++
	return 12, nil
}

func (f *fakeOrderStore) SumOrderRevenue(ctx context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("4500.50"), nil
}

func (f *fakeOrderStore) DeliveredOrdersInRange(ctx context.Context, from, to time.Time) ([]entity.OrderFull, error) {
	f.rangeCalls++
	return nil, nil
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.OrderFull, error) {
	items := make([]entity.OrderItem, 0, len(orderNew.Items))
	for i, it := range orderNew.Items {
		items = append(items, entity.OrderItem{ID: i + 1, OrderID: 1, OrderItemInsert: it})
	}
	return &entity.OrderFull{
		Order: entity.Order{
			ID:           1,
			UUID:         "ord-1",
			Status:       entity.Pending,
			PlacedAt:     time.Now(),
			CustomerName: orderNew.CustomerName,
			Address:      orderNew.Address,
			City:         orderNew.City,
			Phone:        orderNew.Phone,
			TotalAmount:  entity.ItemsTotal(items),
		},
		Items: items,
	}, nil
}

func (f *fakeOrderStore) UpdateOrderStatus(ctx context.Context, orderId int, status entity.OrderStatusName) error {
	f.lastStatus = status
	return nil
}

func (f *fakeOrderStore) AssignOrderDriver(ctx context.Context, orderId int, driverId int) error {
	f.assignedTo = driverId
	return nil
}

type fakeProductStore struct {
	dependency.Products
	perCategoryCalls int
}

func (f *fakeProductStore) CountProductsByCategory(ctx context.Context, c entity.CategoryEnum) (int, error) {
	f.perCategoryCalls++
	return 3, nil
}

func (f *fakeProductStore) CountProducts(ctx context.Context) (int, error) { return 30, nil }

func (f *fakeProductStore) AddProduct(ctx context.Context, prd *entity.ProductNew) (int, error) {
	return 7, nil
}

func (f *fakeProductStore) GetProductById(ctx context.Context, id int) (*entity.ProductFull, error) {
	return &entity.ProductFull{
		Product: &entity.Product{
			ID:   id,
			Name: "Thinkpad",
			Cost: decimal.RequireFromString("1200"),
		},
		Category:  entity.Laptop,
		ImageURLs: []string{"https://cdn.example.com/img/1.jpg"},
	}, nil
}

type fakeCustomerStore struct{}

func (fakeCustomerStore) CountCustomers(ctx context.Context) (int, error) { return 9, nil }

type fakeDriverStore struct {
	dependency.Drivers
	known map[int]bool
}

func (f *fakeDriverStore) GetDriverById(ctx context.Context, id int) (*entity.DriverFull, error) {
	if !f.known[id] {
		return nil, store.ErrDriverNotFound
	}
	return &entity.DriverFull{Driver: entity.Driver{ID: id, Name: "Janis"}}, nil
}

type fakeRepository struct {
	dependency.Repository
	orders    *fakeOrderStore
	products  *fakeProductStore
	drivers   *fakeDriverStore
	customers fakeCustomerStore
}

func (f *fakeRepository) Orders() dependency.Orders       { return f.orders }
func (f *fakeRepository) Products() dependency.Products   { return f.products }
func (f *fakeRepository) Drivers() dependency.Drivers     { return f.drivers }
func (f *fakeRepository) Customers() dependency.Customers { return f.customers }

type fakeBucket struct {
	lastImageName string
}

func (f *fakeBucket) UploadProductImage(ctx context.Context, rawB64Image, imageName string) (string, error) {
	f.lastImageName = imageName
	return "https://cdn.example.com/img/" + imageName + ".jpg", nil
}

func (f *fakeBucket) GetBaseFolder() string { return "img" }

type fakeRevalidator struct {
	paths []string
	err   error
}

func (f *fakeRevalidator) RevalidatePath(ctx context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

func newTestServer(t *testing.T) (*Server, *fakeRepository, *fakeBucket, *fakeRevalidator) {
	t.Helper()
	repo := &fakeRepository{
		orders:   &fakeOrderStore{},
		products: &fakeProductStore{},
		drivers:  &fakeDriverStore{known: map[int]bool{4: true}},
	}
	reports := report.New(repo.orders, repo.products, repo.customers, time.UTC)
	b := &fakeBucket{}
	rv := &fakeRevalidator{}
	return New(repo, b, rv, reports, time.Minute), repo, b, rv
}

func TestCountersCached(t *testing.T) {
	s, repo, _, _ := newTestServer(t)
	ctx := context.Background()

	first, err := s.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, first.Orders)
	assert.Equal(t, 30, first.Products)
	assert.Equal(t, 9, first.Customers)
	assert.InDelta(t, 4500.50, first.Revenue, 0.001)

	second, err := s.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.orders.countCalls)
}

func TestCreateOrderInvalidatesCounters(t *testing.T) {
	s, repo, _, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.Counters(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repo.orders.countCalls)

	resp, err := s.CreateOrder(ctx, &dto.CheckoutOrder{
		CustomerName: "Janis Berzins",
		Address:      "Brivibas 1",
		City:         "Riga",
		Phone:        "+371 2000001",
		ProductsList: []dto.CheckoutLineItem{
			{
				Name:     "Thinkpad",
				Category: "LAPTOP",
				Cost:     dto.NumberFromDecimal(decimal.RequireFromString("1200")),
				Quantity: dto.NumberFromDecimal(decimal.NewFromInt(2)),
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)

	_, err = s.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.orders.countCalls)
}

func TestCategoryStockCachedAndInvalidatedOnProductChange(t *testing.T) {
	s, repo, _, rv := newTestServer(t)
	ctx := context.Background()

	stock, err := s.CategoryStock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 16)

	_, err = s.CategoryStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, repo.products.perCategoryCalls)

	_, err = s.AddProduct(ctx, &dto.ProductRequest{Name: "Thinkpad", Category: "LAPTOP"})
	require.NoError(t, err)
	assert.Contains(t, rv.paths, "/products")

	_, err = s.CategoryStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32, repo.products.perCategoryCalls)
}

func TestMonthlySalesFlushedOnDelivery(t *testing.T) {
	s, repo, _, _ := newTestServer(t)
	ctx := context.Background()

	series, err := s.MonthlySales(ctx, 2026, time.January)
	require.NoError(t, err)
	require.Len(t, series, 31)

	_, err = s.MonthlySales(ctx, 2026, time.January)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.orders.rangeCalls)

	// non-terminal transitions leave the sales series alone
	require.NoError(t, s.UpdateOrderStatus(ctx, 1, entity.Shipped))
	_, err = s.MonthlySales(ctx, 2026, time.January)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.orders.rangeCalls)

	require.NoError(t, s.UpdateOrderStatus(ctx, 1, entity.Delivered))
	_, err = s.MonthlySales(ctx, 2026, time.January)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.orders.rangeCalls)
}

func TestAssignDriverUnknownDriver(t *testing.T) {
	s, repo, _, _ := newTestServer(t)
	ctx := context.Background()

	err := s.AssignDriver(ctx, 1, 99)
	require.ErrorIs(t, err, store.ErrDriverNotFound)
	assert.Zero(t, repo.orders.assignedTo)

	require.NoError(t, s.AssignDriver(ctx, 1, 4))
	assert.Equal(t, 4, repo.orders.assignedTo)
}

func TestUploadProductImage(t *testing.T) {
	s, _, b, _ := newTestServer(t)

	url, err := s.UploadProductImage(context.Background(), "data:image/jpeg;base64,dGVzdA==")
	require.NoError(t, err)
	assert.NotEmpty(t, b.lastImageName)
	assert.Contains(t, url, b.lastImageName)
}

func TestRevalidationFailureIsNonFatal(t *testing.T) {
	s, _, _, rv := newTestServer(t)
	rv.err = assert.AnError

	_, err := s.AddProduct(context.Background(), &dto.ProductRequest{Name: "Thinkpad", Category: "LAPTOP"})
	require.NoError(t, err)
}
