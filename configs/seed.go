package configs

import (
	"log"

	"github.com/shostako/yasuragi-no-sato/entity"
	"golang.org/x/crypto/bcrypt"
)

// 初回起動時の管理者作成
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		log.Println("ℹ️ admin already exists:", cfg.AdminEmail)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	admin := entity.User{
		Email:       cfg.AdminEmail,
		Password:    string(hash),
		DisplayName: "管理者",
		Role:        "admin",
	}
	return db.Create(&admin).Error
}
