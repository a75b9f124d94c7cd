package request

import "github.com/shopspring/decimal"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	AccountNumber   string          `json:"account_number" binding:"required,max=50"`
	Name            string          `json:"name" binding:"required,min=2,max=255"`
	Email           *string         `json:"email" binding:"omitempty,email"`
	Phone           *string         `json:"phone"`
	Address         *string         `json:"address"`
	DeliveryAddress *string         `json:"delivery_address"`
	OnAccount       bool            `json:"on_account"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
}

// SearchCustomersRequest holds the query of a customer search
type SearchCustomersRequest struct {
	Query   string `form:"q" binding:"required"`
	Mode    string `form:"mode"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
