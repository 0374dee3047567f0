package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	v "github.com/asaskevich/govalidator"
	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/entity"
)

// listProductsDefaultLimit bounds unfiltered listings, matching the
// console's default page size.
const listProductsDefaultLimit = 100

var ErrProductNotFound = errors.New("product not found")

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing the Products interface.
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) categoryIdByName(name entity.CategoryEnum) (int, error) {
	if !entity.IsValidCategory(name) {
		return 0, fmt.Errorf("unknown category %q", name)
	}
	cat, ok := ms.cache.GetCategoryByName(name)
	if !ok {
		return 0, fmt.Errorf("category %q is not in the dictionary", name)
	}
	return cat.ID, nil
}

func (ms *MYSQLStore) AddProduct(ctx context.Context, prd *entity.ProductNew) (int, error) {
	if ok, err := v.ValidateStruct(prd); !ok {
		return 0, fmt.Errorf("invalid product: %w", err)
	}
	categoryId, err := ms.categoryIdByName(prd.Category)
	if err != nil {
		return 0, err
	}

	var id int
	err = ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		id, err = ExecNamedLastId(ctx, rep.DB(), `
			INSERT INTO product (name, category_id, cost, details, featured, created_at)
			VALUES (:name, :categoryId, :cost, :details, :featured, :createdAt)`,
			map[string]any{
				"name":       prd.Name,
				"categoryId": categoryId,
				"cost":       prd.Cost,
				"details":    prd.Details,
				"featured":   prd.Featured,
				"createdAt":  rep.Now(),
			})
		if err != nil {
			return fmt.Errorf("can't insert product: %w", err)
		}
		return insertProductImages(ctx, rep.DB(), id, prd.ImageURLs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertProductImages(ctx context.Context, conn dependency.DB, productId int, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(urls))
	for i, url := range urls {
		rows = append(rows, map[string]any{
			"product_id": productId,
			"url":        url,
			"position":   i,
		})
	}
	return BulkInsert(ctx, conn, "product_image", rows)
}

func (ms *MYSQLStore) UpdateProduct(ctx context.Context, prd *entity.ProductNew, id int) error {
	if ok, err := v.ValidateStruct(prd); !ok {
		return fmt.Errorf("invalid product: %w", err)
	}
	categoryId, err := ms.categoryIdByName(prd.Category)
	if err != nil {
		return err
	}

	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := ExecNamed(ctx, rep.DB(), `
			UPDATE product
			SET name = :name, category_id = :categoryId, cost = :cost,
				details = :details, featured = :featured
			WHERE id = :id`,
			map[string]any{
				"id":         id,
				"name":       prd.Name,
				"categoryId": categoryId,
				"cost":       prd.Cost,
				"details":    prd.Details,
				"featured":   prd.Featured,
			})
		if err != nil {
			return fmt.Errorf("can't update product: %w", err)
		}
		err = ExecNamed(ctx, rep.DB(), `DELETE FROM product_image WHERE product_id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't delete product images: %w", err)
		}
		return insertProductImages(ctx, rep.DB(), id, prd.ImageURLs)
	})
}

func (ms *MYSQLStore) GetProductById(ctx context.Context, id int) (*entity.ProductFull, error) {
	row, err := QueryNamedOne[struct {
		entity.Product
		CategoryName string `db:"category_name"`
	}](ctx, ms.db, `
		SELECT p.id, p.name, p.category_id, p.cost, p.details, p.featured, p.created_at,
			c.name AS category_name
		FROM product p
		JOIN category c ON c.id = p.category_id
		WHERE p.id = :id`,
		map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("can't get product by id: %w", err)
	}

	urls, err := ms.productImageURLs(ctx, id)
	if err != nil {
		return nil, err
	}

	p := row.Product
	return &entity.ProductFull{
		Product:   &p,
		Category:  entity.CategoryEnum(row.CategoryName),
		ImageURLs: urls,
	}, nil
}

func (ms *MYSQLStore) productImageURLs(ctx context.Context, productId int) ([]string, error) {
	images, err := QueryListNamed[entity.ProductImage](ctx, ms.db, `
		SELECT id, product_id, url, position
		FROM product_image
		WHERE product_id = :productId
		ORDER BY position`,
		map[string]any{"productId": productId})
	if err != nil {
		return nil, fmt.Errorf("can't get product images: %w", err)
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls, nil
}

func (ms *MYSQLStore) ListProducts(ctx context.Context, filter *entity.ProductFilter) ([]entity.ProductFull, error) {
	if filter == nil {
		filter = &entity.ProductFilter{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = listProductsDefaultLimit
	}

	where := "1 = 1"
	params := map[string]any{"limit": limit}
	if filter.Category != "" {
		categoryId, err := ms.categoryIdByName(filter.Category)
		if err != nil {
			return nil, err
		}
		where += " AND p.category_id = :categoryId"
		params["categoryId"] = categoryId
	}
	if filter.NamePrefix != "" {
		where += " AND p.name LIKE :namePrefix"
		params["namePrefix"] = filter.NamePrefix + "%"
	}
	if filter.Featured {
		where += " AND p.featured = TRUE"
	}

	rows, err := QueryListNamed[struct {
		entity.Product
		CategoryName string `db:"category_name"`
	}](ctx, ms.db, fmt.Sprintf(`
		SELECT p.id, p.name, p.category_id, p.cost, p.details, p.featured, p.created_at,
			c.name AS category_name
		FROM product p
		JOIN category c ON c.id = p.category_id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT :limit`, where), params)
	if err != nil {
		return nil, fmt.Errorf("can't list products: %w", err)
	}
	if len(rows) == 0 {
		return []entity.ProductFull{}, nil
	}

	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Product.ID)
	}
	images, err := QueryListNamed[entity.ProductImage](ctx, ms.db, `
		SELECT id, product_id, url, position
		FROM product_image
		WHERE product_id IN (:ids)
		ORDER BY product_id, position`,
		map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("can't get product images: %w", err)
	}
	urlsByProduct := make(map[int][]string, len(rows))
	for _, img := range images {
		urlsByProduct[img.ProductID] = append(urlsByProduct[img.ProductID], img.URL)
	}

	products := make([]entity.ProductFull, 0, len(rows))
	for _, r := range rows {
		p := r.Product
		products = append(products, entity.ProductFull{
			Product:   &p,
			Category:  entity.CategoryEnum(r.CategoryName),
			ImageURLs: urlsByProduct[p.ID],
		})
	}
	return products, nil
}

func (ms *MYSQLStore) SetProductFeatured(ctx context.Context, id int, featured bool) error {
	err := ExecNamed(ctx, ms.db, `UPDATE product SET featured = :featured WHERE id = :id`,
		map[string]any{"id": id, "featured": featured})
	if err != nil {
		return fmt.Errorf("can't toggle product featured flag: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteProductById(ctx context.Context, id int) error {
	err := ExecNamed(ctx, ms.db, `DELETE FROM product WHERE id = :id`,
		map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't delete product: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) CountProductsByCategory(ctx context.Context, category entity.CategoryEnum) (int, error) {
	categoryId, err := ms.categoryIdByName(category)
	if err != nil {
		return 0, err
	}
	count, err := QueryCountNamed(ctx, ms.db, `
		SELECT COUNT(*) FROM product WHERE category_id = :categoryId`,
		map[string]any{"categoryId": categoryId})
	if err != nil {
		return 0, fmt.Errorf("can't count products by category: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) CountProducts(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.db, `SELECT COUNT(*) FROM product`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("can't count products: %w", err)
	}
	return count, nil
}
