package database

import (
	"errors"

	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// SeedDefaultData creates the roles, an admin user and a few customers.
// Existing rows are left alone so the seed can run on every start.
func SeedDefaultData(db *gorm.DB, log logrus.FieldLogger) error {
	log.Info("seeding default data")

	roles := make(map[string]entity.Role)
	for _, name := range []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleCashier} {
		role := entity.Role{Name: name}
		if err := db.Where(entity.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		roles[name] = role
	}

	username := viper.GetString("ADMIN_USERNAME")
	password := viper.GetString("ADMIN_PASSWORD")
	if username != "" && password != "" {
		var existing entity.User
		err := db.Where("username = ?", username).First(&existing).Error
		switch {
		case err == nil:
			log.WithField("username", username).Debug("admin user already exists")
		case errors.Is(err, gorm.ErrRecordNotFound):
			hashed, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			admin := entity.User{
				FirstName: "Store",
				LastName:  "Admin",
				Username:  username,
				Email:     viper.GetString("ADMIN_EMAIL"),
				Password:  hashed,
				StaffCode: "ADM",
				Active:    true,
				Roles:     []entity.Role{roles[entity.RoleAdmin]},
			}
			if err := db.Create(&admin).Error; err != nil {
				log.WithError(err).Warn("failed to create admin user")
			} else {
				log.WithField("username", username).Info("admin user created")
			}
		default:
			return err
		}
	}

	customers := []entity.Customer{
		{AccountNumber: "CASH", Name: "Cash Customer"},
		{AccountNumber: "ACC001", Name: "Mama Mboga Groceries", Phone: strPtr("0712 345678"), PhoneE164: strPtr("+254712345678"),
			OnAccount: true, CreditLimit: decimal.NewFromInt(50000), DeliveryAddress: strPtr("Stall 14, City Market")},
		{AccountNumber: "ACC002", Name: "Kilimani Hardware", Phone: strPtr("0722 000111"), PhoneE164: strPtr("+254722000111"),
			OnAccount: true, CreditLimit: decimal.NewFromInt(120000)},
	}
	for i := range customers {
		c := customers[i]
		if err := db.Where(entity.Customer{AccountNumber: c.AccountNumber}).FirstOrCreate(&c).Error; err != nil {
			log.WithError(err).WithField("account", c.AccountNumber).Warn("failed to seed customer")
		}
	}

	log.Info("default data seeding completed")
	return nil
}
