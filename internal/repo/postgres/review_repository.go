package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

// ReviewRepository — отзывы на Postgres.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `
	id, author_name, author_email, rating, review_text, COALESCE(photo_url, ''),
	COALESCE(product_id::text, ''), is_approved, verified_purchase, created_at
`

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reviews (
			id, author_name, author_email, rating, review_text, photo_url,
			product_id, is_approved, verified_purchase
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9)
	`,
		rv.ID, rv.AuthorName, rv.AuthorEmail, rv.Rating, rv.ReviewText, rv.PhotoURL,
		rv.ProductID, rv.IsApproved, rv.VerifiedPurchase,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetApproved — одобрить/отклонить отзыв; возвращает обновлённую запись.
func (r *ReviewRepository) SetApproved(ctx context.Context, id string, approved bool) (*domain.Review, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reviews SET is_approved = $2 WHERE id = $1
		RETURNING `+reviewColumns,
		id, approved,
	)
	rv, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set review approved: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) ListApproved(ctx context.Context, sort domain.ReviewSort) ([]*domain.Review, error) {
	order := `created_at DESC`
	switch sort {
	case domain.ReviewSortHighest:
		order = `rating DESC, created_at DESC`
	case domain.ReviewSortLowest:
		order = `rating ASC, created_at DESC`
	}
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE is_approved ORDER BY `+order)
}

func (r *ReviewRepository) ListAdmin(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	switch filter {
	case domain.ReviewFilterPending:
		query += ` WHERE NOT is_approved`
	case domain.ReviewFilterApproved:
		query += ` WHERE is_approved`
	}
	return r.list(ctx, query+` ORDER BY created_at DESC`)
}

func (r *ReviewRepository) list(ctx context.Context, query string) ([]*domain.Review, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		rv, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan review: %w", scanErr)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID, &rv.AuthorName, &rv.AuthorEmail, &rv.Rating, &rv.ReviewText, &rv.PhotoURL,
		&rv.ProductID, &rv.IsApproved, &rv.VerifiedPurchase, &rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
