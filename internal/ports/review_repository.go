package ports

import (
	"context"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
	SetApproved(ctx context.Context, id string, approved bool) (*domain.Review, error)
	ListApproved(ctx context.Context, sort domain.ReviewSort) ([]*domain.Review, error)
	ListAdmin(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error)
}

type SocialPostRepository interface {
	Create(ctx context.Context, p *domain.SocialPost) error
	Update(ctx context.Context, p *domain.SocialPost) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*domain.SocialPost, error)
}

type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
}
