package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"kursusku_backend/internals/configs"
	"kursusku_backend/internals/features/users/auth/model"
)

const accessTTL = 7 * 24 * time.Hour

// GenerateAccessToken membuat bearer token HS256 dengan klaim identitas
// (id, user_name, role) yang dibaca middleware auth.
func GenerateAccessToken(user *model.User) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
