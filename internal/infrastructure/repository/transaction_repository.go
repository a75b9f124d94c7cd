package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	domainRepo "github.com/sangkips/till-api/internal/domain/repository"
	"gorm.io/gorm"
)

const importBatchSize = 200

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create stores the transaction together with its lines
func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// CreateBatch stores all transactions or none
func (r *transactionRepository) CreateBatch(ctx context.Context, txns []entity.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&txns, importBatchSize).Error
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).First(&txn, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) List(ctx context.Context, filter *domainRepo.TransactionFilter) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(OccurredBetween(filter.StartDate, filter.EndDate), KindIn(filter.Kinds))

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.TillNumber != "" {
		query = query.Where("till_number = ?", filter.TillNumber)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := filter.Pagination
	params.Validate()
	query = query.Offset(params.Offset()).Limit(params.PerPage).
		Order("occurred_at ASC, document_no ASC")
	if filter.WithLines {
		query = query.Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") })
	}

	err := query.Find(&txns).Error
	return txns, total, err
}

// NextSequence counts soft-deleted rows too so a number is never reused
func (r *transactionRepository) NextSequence(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Transaction{}).
		Where("document_no LIKE ?", escapeLike(prefix)+"%").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}
