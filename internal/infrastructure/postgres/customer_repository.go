package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `
	SELECT id, first_name, last_name, email, phone, address, registered_at, user_id
	FROM customers`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, address, registered_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.RegisteredAt, nullable(c.UserID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, customerSelect+` WHERE id = $1`, id)
}

// GetByUserID obtiene el cliente enlazado a una identidad.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	if userID == "" {
		return nil, nil
	}
	return r.getOne(ctx, customerSelect+` WHERE user_id = $1`, userID)
}

// Update sobrescribe los datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6, user_id = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, nullable(c.UserID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes por apellido y nombre.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, customerSelect+` ORDER BY lower(last_name), lower(first_name), id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, "customers")
}

// Delete elimina el cliente; ErrConflict si tiene ventas.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "customers", id)
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, arg string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var userID *string
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.RegisteredAt, &userID); err != nil {
		return nil, err
	}
	c.UserID = fromNullable(userID)
	return &c, nil
}
