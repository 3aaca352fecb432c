package repository

import (
	"context"

	"rental/internal/domain"
)

// CustomerRepository defines the persistence operations for customers.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by ID.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetByEmail retrieves a customer by email.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
