package database

import (
	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heron/internal/config"
	"heron/internal/domain"
)

// seedDefaults fills the master tables a fresh deployment needs before the
// settings screens exist: configured departments and roles, plus the built-in
// permission sets. Existing rows are left untouched.
func seedDefaults(db *gorm.DB) error {
	cfg := config.GetConfig()

	departments := make([]domain.Department, 0, len(cfg.Defaults.Departments))
	for order, name := range cfg.Defaults.Departments {
		departments = append(departments, domain.Department{
			Name:         name,
			DisplayOrder: order + 1,
			IsActive:     true,
		})
	}
	if len(departments) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&departments).Error; err != nil {
			return err
		}
	}

	roles := make([]domain.Role, 0, len(cfg.Defaults.Roles))
	for order, name := range cfg.Defaults.Roles {
		roles = append(roles, domain.Role{
			Name:         name,
			DisplayOrder: order + 1,
			IsActive:     true,
		})
	}
	if len(roles) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&roles).Error; err != nil {
			return err
		}
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(defaultPermissions()).Error; err != nil {
		return err
	}

	log.Debug("Default master data seeded")
	return nil
}

func defaultPermissions() *[]domain.Permission {
	viewer := "Read-only access to the forecast table"
	editor := "Edit forecast rows and add new hires"
	admin := "Full access including settings and user management"

	return &[]domain.Permission{
		{
			Name:            "viewer",
			Description:     &viewer,
			CanViewForecast: true,
		},
		{
			Name:            "editor",
			Description:     &editor,
			CanViewForecast: true,
			CanEditForecast: true,
			CanAddNewHire:   true,
		},
		{
			Name:              "admin",
			Description:       &admin,
			CanViewForecast:   true,
			CanEditForecast:   true,
			CanAddNewHire:     true,
			CanAccessSettings: true,
			IsAdmin:           true,
		},
	}
}
