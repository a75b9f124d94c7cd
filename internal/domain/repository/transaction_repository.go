package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/pkg/pagination"
)

// TransactionFilter selects transactions by date range and document attributes
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Kinds      []enum.SaleKind
	CustomerID *uuid.UUID
	TillNumber string
	WithLines  bool
	Pagination pagination.PaginationParams
}

// TransactionRepository defines the interface for committed till documents
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	CreateBatch(ctx context.Context, txns []entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Transaction, error)
	// List returns one page ordered by occurrence time, oldest first
	List(ctx context.Context, filter *TransactionFilter) ([]entity.Transaction, int64, error)
	// NextSequence returns the next number for documents starting with prefix
	NextSequence(ctx context.Context, prefix string) (int64, error)
}
