package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims はシステムで使うカスタムJWTクレーム。
// EditMode はインライン編集の「編集モード」フラグで、role=admin の
// トークンにしか true を立てない（発行箇所で強制）。
type Claims struct {
	UserID   uint   `json:"userId"`
	Role     string `json:"role"`
	EditMode bool   `json:"editMode,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken はユーザー用JWTを発行する
func GenerateToken(userID uint, role string, editMode bool, secret string, ttl time.Duration) (string, error) {
	if role != "admin" {
		editMode = false // 管理者以外に編集モードは存在しない
	}
	claims := &Claims{
		UserID:   userID,
		Role:     role,
		EditMode: editMode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
