package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

const categoryColumns = `id, name, slug, image_url, icon, display_order, is_active, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Icon, &c.DisplayOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	return q.listCategories(ctx, `SELECT `+categoryColumns+` FROM categories WHERE is_active ORDER BY display_order, name`)
}

func (q *Queries) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return q.listCategories(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY display_order, name`)
}

func (q *Queries) listCategories(ctx context.Context, sql string) ([]domain.Category, error) {
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Icon, &c.DisplayOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (q *Queries) GetCategoryByID(ctx context.Context, id pgtype.UUID) (*domain.Category, error) {
	c, err := scanCategory(q.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (q *Queries) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	c, err := scanCategory(q.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, image_url, icon, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		input.Name, input.Slug, input.ImageURL, input.Icon, input.DisplayOrder, input.IsActive))
	if err != nil {
		return nil, wrapSlugConflict(err, "create category")
	}
	return c, nil
}

func (q *Queries) UpdateCategory(ctx context.Context, id pgtype.UUID, input domain.CategoryInput) (*domain.Category, error) {
	c, err := scanCategory(q.db.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, slug = $3, image_url = $4, icon = $5, display_order = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, input.Name, input.Slug, input.ImageURL, input.Icon, input.DisplayOrder, input.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, wrapSlugConflict(err, "update category")
	}
	return c, nil
}

func (q *Queries) DeleteCategory(ctx context.Context, id pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

const productColumns = `id, category_id, name, slug, description, price, discount_price, stock, image_url, images, sku, is_featured, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.DiscountPrice,
		&p.Stock, &p.ImageURL, &p.Images, &p.SKU, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Queries) ListActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE is_active`
	args := []interface{}{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		sql += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		sql += fmt.Sprintf(" AND is_featured = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		sql += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	sql += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return q.listProducts(ctx, sql, args...)
}

func (q *Queries) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return q.listProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (q *Queries) listProducts(ctx context.Context, sql string, args ...interface{}) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.DiscountPrice,
			&p.Stock, &p.ImageURL, &p.Images, &p.SKU, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (*domain.Product, error) {
	p, err := scanProduct(q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (q *Queries) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	p, err := scanProduct(q.db.QueryRow(ctx, `
		INSERT INTO products (category_id, name, slug, description, price, discount_price, stock, image_url, images, sku, is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+productColumns,
		input.CategoryID, input.Name, input.Slug, input.Description, input.Price, input.DiscountPrice,
		input.Stock, input.ImageURL, input.Images, input.SKU, input.IsFeatured, input.IsActive))
	if err != nil {
		return nil, wrapSlugConflict(err, "create product")
	}
	return p, nil
}

func (q *Queries) UpdateProduct(ctx context.Context, id pgtype.UUID, input domain.ProductInput) (*domain.Product, error) {
	p, err := scanProduct(q.db.QueryRow(ctx, `
		UPDATE products
		SET category_id = $2, name = $3, slug = $4, description = $5, price = $6, discount_price = $7,
		    stock = $8, image_url = $9, images = $10, sku = $11, is_featured = $12, is_active = $13, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, input.CategoryID, input.Name, input.Slug, input.Description, input.Price, input.DiscountPrice,
		input.Stock, input.ImageURL, input.Images, input.SKU, input.IsFeatured, input.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, wrapSlugConflict(err, "update product")
	}
	return p, nil
}

func (q *Queries) DeleteProduct(ctx context.Context, id pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementProductStock guards against oversell: the update only matches
// when enough stock remains, so a zero-row result means insufficient stock.
func (q *Queries) DecrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (q *Queries) IncrementProductStock(ctx context.Context, id pgtype.UUID, quantity int32) error {
	if _, err := q.db.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, quantity); err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

func wrapSlugConflict(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateSlug
	}
	return fmt.Errorf("%s: %w", op, err)
}
