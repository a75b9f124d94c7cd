package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	domainRepo "github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByAccountNumber(ctx context.Context, account string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "account_number = ?", account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// Search matches case-insensitively with LOWER() LIKE so the same query
// runs on postgres and mysql.
func (r *customerRepository) Search(ctx context.Context, search domainRepo.CustomerSearch, params *pagination.PaginationParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})

	if search.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", contains(search.Name))
	}
	if search.AccountNumber != "" {
		query = query.Where("LOWER(account_number) LIKE ?", prefix(search.AccountNumber))
	}
	if search.PhoneE164 != "" {
		query = query.Where("phone_e164 = ?", search.PhoneE164)
	}
	if search.Any != "" {
		term := contains(search.Any)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(account_number) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			term, term, term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func contains(term string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
}

func prefix(term string) string {
	return escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
