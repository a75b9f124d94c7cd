package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/pkg/pagination"
)

// CustomerSearch narrows a customer lookup. Empty fields are ignored.
type CustomerSearch struct {
	Name          string
	AccountNumber string
	PhoneE164     string
	// Any matches the term against name, account number, email and phone
	Any string
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByAccountNumber(ctx context.Context, account string) (*entity.Customer, error)
	Search(ctx context.Context, search CustomerSearch, params *pagination.PaginationParams) ([]entity.Customer, int64, error)
}
