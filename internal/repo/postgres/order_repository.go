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

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

const orderColumns = `
	id, customer_name, COALESCE(customer_last_name, ''), customer_email,
	COALESCE(customer_phone, ''), shipping_address, COALESCE(city, ''),
	COALESCE(postal_code, ''), COALESCE(country, ''), total_amount, status,
	COALESCE(shiprocket_order_id, ''), COALESCE(shiprocket_channel_id, ''),
	created_at, updated_at
`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerLastName, &o.CustomerEmail,
		&o.CustomerPhone, &o.ShippingAddress, &o.City,
		&o.PostalCode, &o.Country, &o.TotalAmount, &o.Status,
		&o.ShiprocketOrderID, &o.ShiprocketChannelID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Save — транзакционно сохраняет заказ и его позиции.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if order == nil || order.CustomerEmail == "" {
		return errors.New("order is empty or customer_email is required")
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = domain.StatusPending
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if _, err = transaction.Exec(ctx, `
		INSERT INTO orders (
			id, customer_name, customer_last_name, customer_email, customer_phone,
			shipping_address, city, postal_code, country, total_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		order.ID, order.CustomerName, order.CustomerLastName, order.CustomerEmail, order.CustomerPhone,
		order.ShippingAddress, order.City, order.PostalCode, order.Country, order.TotalAmount, order.Status,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = order.ID
		if _, err = transaction.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, product_name, product_price,
				discount_price, quantity, subtotal
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			item.ID, item.OrderID, item.ProductID, item.ProductName, item.ProductPrice,
			item.DiscountPrice, item.Quantity, item.Subtotal,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return transaction.Commit(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`, email)
}

// ListSyncable — заказы с присвоенным channel id, ещё не дошедшие до
// терминального статуса: кандидаты на сверку с курьером.
func (r *OrderRepository) ListSyncable(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE shiprocket_channel_id IS NOT NULL AND shiprocket_channel_id <> ''
		  AND status NOT IN ('delivered', 'cancelled')
		ORDER BY created_at
	`)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan order: %w", scanErr)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) ItemsByOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, product_name, product_price,
		       COALESCE(discount_price, 0), quantity, subtotal
		FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPrice,
			&it.DiscountPrice, &it.Quantity, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Delete — удаляет заказ; позиции уходят каскадом (FK ON DELETE CASCADE).
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) SetShiprocketIDs(ctx context.Context, id, shiprocketOrderID, channelID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET shiprocket_order_id = $2, shiprocket_channel_id = $3, updated_at = now()
		WHERE id = $1
	`, id, shiprocketOrderID, channelID)
	if err != nil {
		return fmt.Errorf("set shiprocket ids: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
