package infra

import (
	"log"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Operator{},
		&db_models.Bot{},
		&db_models.Plan{},
		&db_models.Package{},
		&db_models.Subscription{},
		&db_models.Transaction{},
	)
	if err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}
}
