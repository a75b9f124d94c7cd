package repository

import (
	"time"

	"github.com/sangkips/till-api/internal/domain/enum"
	"gorm.io/gorm"
)

// OccurredBetween limits transactions to a date range. Either bound may be nil.
func OccurredBetween(start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where("occurred_at >= ?", *start)
		}
		if end != nil {
			db = db.Where("occurred_at < ?", *end)
		}
		return db
	}
}

// KindIn limits transactions to the given sale kinds. An empty list matches all.
func KindIn(kinds []enum.SaleKind) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(kinds) == 0 {
			return db
		}
		return db.Where("kind IN ?", kinds)
	}
}
