package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/techstore/admin-manager/internal/entity"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Products interface {
		ContextStore
		// AddProduct adds a new product along with its image URLs.
		AddProduct(ctx context.Context, prd *entity.ProductNew) (int, error)
		// UpdateProduct replaces the product row and its image list.
		UpdateProduct(ctx context.Context, prd *entity.ProductNew, id int) error
		// GetProductById returns a product with category and images resolved.
		GetProductById(ctx context.Context, id int) (*entity.ProductFull, error)
		// ListProducts returns products matching the filter, newest first.
		ListProducts(ctx context.Context, filter *entity.ProductFilter) ([]entity.ProductFull, error)
		// SetProductFeatured toggles the featured flag.
		SetProductFeatured(ctx context.Context, id int, featured bool) error
		// DeleteProductById deletes a product and its images.
		DeleteProductById(ctx context.Context, id int) error
		// CountProductsByCategory returns the number of products in a category.
		CountProductsByCategory(ctx context.Context, category entity.CategoryEnum) (int, error)
		// CountProducts returns the total product count.
		CountProducts(ctx context.Context) (int, error)
	}

	Orders interface {
		// CreateOrder inserts an order with its line item snapshot and
		// upserts the customer record. Status starts as Pending.
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.OrderFull, error)
		GetOrderById(ctx context.Context, orderId int) (*entity.OrderFull, error)
		// ListOrdersByStatus returns orders with the given status; exclude
		// inverts the match (status != given), which the console uses for
		// the active orders view.
		ListOrdersByStatus(ctx context.Context, status entity.OrderStatusName, exclude bool) ([]entity.OrderFull, error)
		// DeliveredOrdersInRange returns Delivered orders whose delivery
		// timestamp falls within [from, to] inclusive, items attached.
		DeliveredOrdersInRange(ctx context.Context, from, to time.Time) ([]entity.OrderFull, error)
		// UpdateOrderStatus moves the order to the given status. Delivered
		// stamps delivered_at with the store clock.
		UpdateOrderStatus(ctx context.Context, orderId int, status entity.OrderStatusName) error
		// AssignOrderDriver routes the order to a driver.
		AssignOrderDriver(ctx context.Context, orderId int, driverId int) error
		DeleteOrderById(ctx context.Context, orderId int) error
		CountOrders(ctx context.Context) (int, error)
		// SumOrderRevenue sums total_amount across all orders.
		SumOrderRevenue(ctx context.Context) (decimal.Decimal, error)
	}

	Drivers interface {
		AddDriver(ctx context.Context, drv *entity.DriverNew) (int, error)
		GetDriverById(ctx context.Context, id int) (*entity.DriverFull, error)
		GetDriverByEmail(ctx context.Context, email string) (*entity.DriverFull, error)
		ListDrivers(ctx context.Context) ([]entity.DriverFull, error)
		UpdateDriver(ctx context.Context, drv *entity.DriverNew, id int) error
		DeleteDriverById(ctx context.Context, id int) error
	}

	Customers interface {
		CountCustomers(ctx context.Context) (int, error)
	}

	Admin interface {
		AddAdmin(ctx context.Context, un, pwHash string) error
		DeleteAdmin(ctx context.Context, username string) error
		ChangePassword(ctx context.Context, un, newHash string) error
		PasswordHashByUsername(ctx context.Context, un string) (string, error)
	}

	Repository interface {
		Products() Products
		Orders() Orders
		Drivers() Drivers
		Customers() Customers
		Admin() Admin
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		Cache() Cache
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	Cache interface {
		GetCategoryById(id int) (*entity.Category, bool)
		GetCategoryByName(category entity.CategoryEnum) (entity.Category, bool)
		GetAllCategories() []entity.Category
	}

	FileStore interface {
		// UploadProductImage uploads a base64 encoded image and returns its URL.
		UploadProductImage(ctx context.Context, rawB64Image, imageName string) (string, error)
		GetBaseFolder() string
	}

	// Revalidator notifies the storefront that cached pages must be rebuilt.
	Revalidator interface {
		RevalidatePath(ctx context.Context, path string) error
	}
)
