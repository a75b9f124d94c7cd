package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a cash or account customer of the store
type Customer struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountNumber   string          `gorm:"size:50;uniqueIndex;not null" json:"account_number"`
	Name            string          `gorm:"size:255;not null;index" json:"name"`
	Email           *string         `gorm:"size:255" json:"email,omitempty"`
	Phone           *string         `gorm:"size:50" json:"phone,omitempty"`
	PhoneE164       *string         `gorm:"size:20;index" json:"-"`
	Address         *string         `gorm:"type:text" json:"address,omitempty"`
	DeliveryAddress *string         `gorm:"type:text" json:"delivery_address,omitempty"`
	OnAccount       bool            `gorm:"default:false" json:"on_account"`
	CreditLimit     decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"credit_limit"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
