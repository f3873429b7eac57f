package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.ContactRepository = (*ContactRepository)(nil)

// ContactRepository — сообщения формы обратной связи.
type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = "new"
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.Name, m.Email, m.Subject, m.Message, m.Status)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
