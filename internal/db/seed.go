package database

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shilo-maker/solupresenter-sub003/internal/models"
)

// SeedAdminUser ensures a default admin exists so a fresh install can log in.
// Password comes from SOLU_ADMIN_PASSWORD, falling back to "change-me".
func SeedAdminUser(db *gorm.DB) {
	password := os.Getenv("SOLU_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me"
		log.Println("⚠️ SOLU_ADMIN_PASSWORD not set, seeding admin with the default password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	admin := models.Users{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}

	// UPSERT on username so restarts never duplicate or overwrite
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&admin)

	if result.Error != nil {
		log.Printf("❌ Failed to seed admin user: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Println("🌱 Seeded default admin user")
	}
}
