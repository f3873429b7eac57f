package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что ProductRepository удовлетворяет порту.
var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository — товары каталога на Postgres (pgxpool).
// Категория читается join-ом и кладётся в Product.Category (денормализация для витрины).
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `
	p.id, p.name, p.slug, p.description, p.price, p.discounted_price,
	COALESCE(p.category_id::text, ''), p.images, p.in_stock, p.featured,
	p.created_at, p.updated_at,
	c.id, c.name, c.slug, c.image_url
`

const productFrom = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p       domain.Product
		catID   *string
		catName *string
		catSlug *string
		catImg  *string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.DiscountedPrice,
		&p.CategoryID, &p.Images, &p.InStock, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug, &catImg,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		p.Category = &domain.Category{ID: *catID, Name: deref(catName), Slug: deref(catSlug), ImageURL: deref(catImg)}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUniqueViolation — нарушение уникального индекса (у нас — slug).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (
			id, name, slug, description, price, discounted_price,
			category_id, images, in_stock, featured
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10)
	`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.DiscountedPrice,
		p.CategoryID, p.Images, p.InStock, p.Featured,
	)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET
			name = $2, slug = $3, description = $4, price = $5, discounted_price = $6,
			category_id = NULLIF($7, '')::uuid, images = $8, in_stock = $9, featured = $10,
			updated_at = now()
		WHERE id = $1
	`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.DiscountedPrice,
		p.CategoryID, p.Images, p.InStock, p.Featured,
	)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.slug = $1`, slug)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// List — публичная выборка с фильтрами; порядок — новые первыми.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + productFrom + ` WHERE 1=1`
	args := []any{}

	if filter.Featured {
		query += ` AND p.featured`
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		query += fmt.Sprintf(` AND c.slug = $%d`, len(args))
	}
	query += ` ORDER BY p.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan product: %w", scanErr)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListPaged — админская выборка страницей + общее количество.
func (r *ProductRepository) ListPaged(ctx context.Context, limit, offset int) ([]*domain.Product, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+productFrom+` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products paged: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan product: %w", scanErr)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}
