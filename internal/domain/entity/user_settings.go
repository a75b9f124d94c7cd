package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSettings holds per-user till defaults loaded after login
type UserSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DefaultWarehouse  string `gorm:"size:50" json:"default_warehouse"`
	DefaultTillNumber string `gorm:"size:20" json:"default_till_number"`
	SalesRepCode      string `gorm:"size:50" json:"sales_rep_code"`
	DeliveryMethod    string `gorm:"size:50;default:'collect'" json:"delivery_method"`
	VATInclusive      bool   `gorm:"default:true" json:"vat_inclusive"`
	Currency          string `gorm:"size:10;default:'KES'" json:"currency"`
	Language          string `gorm:"size:10;default:'en'" json:"language"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UserSettings model
func (UserSettings) TableName() string {
	return "user_settings"
}
