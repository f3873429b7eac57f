package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.SocialPostRepository = (*SocialPostRepository)(nil)

// SocialPostRepository — посты соцсетей для витрины.
type SocialPostRepository struct {
	pool *pgxpool.Pool
}

func NewSocialPostRepository(pool *pgxpool.Pool) *SocialPostRepository {
	return &SocialPostRepository{pool: pool}
}

func (r *SocialPostRepository) Create(ctx context.Context, p *domain.SocialPost) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO social_posts (id, platform, post_url, image_url, caption, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Platform, p.PostURL, p.ImageURL, p.Caption, p.IsActive, p.DisplayOrder)
	if err != nil {
		return fmt.Errorf("insert social post: %w", err)
	}
	return nil
}

func (r *SocialPostRepository) Update(ctx context.Context, p *domain.SocialPost) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE social_posts SET
			platform = $2, post_url = $3, image_url = $4, caption = $5,
			is_active = $6, display_order = $7
		WHERE id = $1
	`, p.ID, p.Platform, p.PostURL, p.ImageURL, p.Caption, p.IsActive, p.DisplayOrder)
	if err != nil {
		return fmt.Errorf("update social post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SocialPostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM social_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete social post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SocialPostRepository) ListActive(ctx context.Context) ([]*domain.SocialPost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, platform, post_url, COALESCE(image_url, ''), COALESCE(caption, ''),
		       is_active, display_order, created_at
		FROM social_posts WHERE is_active ORDER BY display_order
	`)
	if err != nil {
		return nil, fmt.Errorf("list social posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.SocialPost
	for rows.Next() {
		var p domain.SocialPost
		if err := rows.Scan(
			&p.ID, &p.Platform, &p.PostURL, &p.ImageURL, &p.Caption,
			&p.IsActive, &p.DisplayOrder, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan social post: %w", err)
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}
