package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.customer_id, s.product_id, s.quantity, s.total, s.sold_at, s.seller_id,
	       c.first_name || CASE WHEN c.last_name = '' THEN '' ELSE ' ' || c.last_name END,
	       p.name, COALESCE(u.username, '')
	FROM sales s
	JOIN customers c ON c.id = s.customer_id
	JOIN products p ON p.id = s.product_id
	LEFT JOIN users u ON u.id = s.seller_id`

// Create persiste una venta con el total ya calculado.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, product_id, quantity, total, sold_at, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.ProductID, s.Quantity, s.Total, s.SoldAt, nullable(s.SellerID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update sobrescribe cliente, producto, cantidad y total.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET customer_id = $2, product_id = $3, quantity = $4, total = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.CustomerID, s.ProductID, s.Quantity, s.Total)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "sales", id)
}

// ListBetween ventas con start <= sold_at < end, en orden cronológico.
func (r *SaleRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.sold_at >= $1 AND s.sold_at < $2 ORDER BY s.sold_at, s.id`, start, end)
}

// ListByDate ventas cuya fecha en la zona loc es date (YYYY-MM-DD), en orden cronológico.
func (r *SaleRepo) ListByDate(ctx context.Context, date string, loc *time.Location) ([]*entity.Sale, error) {
	if loc == nil {
		loc = time.UTC
	}
	return r.list(ctx,
		saleSelect+` WHERE (s.sold_at AT TIME ZONE $2)::date = $1::date ORDER BY s.sold_at, s.id`,
		date, loc.String(),
	)
}

// ListByCustomer ventas del cliente, más recientes primero.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.customer_id = $1 ORDER BY s.sold_at DESC, s.id`, customerID)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var sellerID *string
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.Total, &s.SoldAt, &sellerID,
		&s.CustomerName, &s.ProductName, &s.SellerUsername,
	)
	if err != nil {
		return nil, err
	}
	s.SellerID = fromNullable(sellerID)
	return &s, nil
}
