package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string // 通知の宛先 兼 シード管理者
	AdminPassword string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	UploadDir        string
	EnableAdminSetup bool
	SiteBaseURL      string
}

func LoadConfig() *Config {
	// 本番ではenvを直接注入する。.envが無くても続行
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		DBSource:         getEnv("DB_SOURCE", "yasuragi.db"),
		Port:             getEnv("PORT", "8000"),
		JWTSecret:        getEnv("JWT_SECRET", "changeme"),
		JWTTTL:           time.Duration(24) * time.Hour,
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPass:         getEnv("SMTP_PASS", ""),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		EnableAdminSetup: getEnv("ENABLE_ADMIN_SETUP", "false") == "true",
		SiteBaseURL:      getEnv("SITE_BASE_URL", "https://yasuragi-no-sato.example.jp"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
