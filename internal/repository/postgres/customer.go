package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/domain"
	"rental/internal/repository"
)

// CustomerRepository is a PostgreSQL implementation of repository.CustomerRepository.
type CustomerRepository struct {
	q Querier
}

// NewCustomerRepository creates a new PostgreSQL customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{q: db}
}

const customerColumns = `id, tenant_id, name, email, phone, created_at`

// Create persists a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		customer.ID,
		customer.TenantID,
		customer.Name,
		customer.Email,
		nullString(customer.Phone),
		customer.CreatedAt,
	)

	return err
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByEmail retrieves a customer by email.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.get(ctx, query, email)
}

func (r *CustomerRepository) get(ctx context.Context, query, arg string) (*domain.Customer, error) {
	var customer domain.Customer
	var phone sql.NullString

	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID,
		&customer.TenantID,
		&customer.Name,
		&customer.Email,
		&phone,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if phone.Valid {
		customer.Phone = phone.String
	}

	return &customer, nil
}
