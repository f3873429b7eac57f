package ports

import (
	"context"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	ListPaged(ctx context.Context, limit, offset int) ([]*domain.Product, int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
