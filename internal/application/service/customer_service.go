package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sangkips/till-api/pkg/pagination"
	"github.com/sangkips/till-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SearchMode selects which customer field a search term is matched against
type SearchMode string

const (
	SearchByName    SearchMode = "name"
	SearchByAccount SearchMode = "account"
	SearchByPhone   SearchMode = "phone"
	SearchAny       SearchMode = "any"
)

// ParseSearchMode validates a search mode. Empty means any.
func ParseSearchMode(s string) (SearchMode, error) {
	switch m := SearchMode(strings.ToLower(s)); m {
	case "":
		return SearchAny, nil
	case SearchByName, SearchByAccount, SearchByPhone, SearchAny:
		return m, nil
	}
	return "", apperror.NewBadRequestError("mode must be one of: name, account, phone, any")
}

// CustomerService handles customer lookups from the till
type CustomerService struct {
	customerRepo repository.CustomerRepository
	phoneRegion  string
}

// NewCustomerService creates a new customer service. phoneRegion is used
// to read phone numbers written without a country code.
func NewCustomerService(customerRepo repository.CustomerRepository, phoneRegion string) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, phoneRegion: phoneRegion}
}

// SearchCustomers finds customers whose field selected by mode matches term
func (s *CustomerService) SearchCustomers(ctx context.Context, term string, mode SearchMode, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.NewBadRequestError("search term is required")
	}

	var search repository.CustomerSearch
	switch mode {
	case SearchByName:
		search.Name = term
	case SearchByAccount:
		search.AccountNumber = term
	case SearchByPhone:
		phone, err := utils.NormalizePhone(term, s.phoneRegion)
		if err != nil {
			return nil, apperror.NewBadRequestError("invalid phone number")
		}
		search.PhoneE164 = phone
	default:
		search.Any = term
	}

	params.Validate()
	customers, total, err := s.customerRepo.Search(ctx, search, params)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	AccountNumber   string
	Name            string
	Email           *string
	Phone           *string
	Address         *string
	DeliveryAddress *string
	OnAccount       bool
	CreditLimit     decimal.Decimal
}

// CreateCustomer creates a customer. The phone number, when given, must be
// valid so phone searches can find it.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	existing, err := s.customerRepo.GetByAccountNumber(ctx, input.AccountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Account number already in use")
	}

	customer := &entity.Customer{
		AccountNumber:   input.AccountNumber,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Address:         input.Address,
		DeliveryAddress: input.DeliveryAddress,
		OnAccount:       input.OnAccount,
		CreditLimit:     input.CreditLimit,
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		phone, err := utils.NormalizePhone(*input.Phone, s.phoneRegion)
		if err != nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "phone", Message: "is not a valid phone number"}})
		}
		customer.PhoneE164 = &phone
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// SaleCustomer converts a stored customer to the customer a draft is bound to
func SaleCustomer(c *entity.Customer) *sale.Customer {
	out := &sale.Customer{
		ID:            c.ID,
		AccountNumber: c.AccountNumber,
		Name:          c.Name,
		OnAccount:     c.OnAccount,
	}
	if c.DeliveryAddress != nil {
		out.DeliveryAddress = *c.DeliveryAddress
	}
	return out
}
