package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"kursusku_backend/internals/configs"
	helper "kursusku_backend/internals/helpers"
)

// Path publik yang di-skip auth (webhook payment dsb.)
var skipPaths = map[string]struct{}{
	"/api/wallet/topup/notification": {},
}

// AuthMiddleware memverifikasi bearer token lalu menaruh identitas caller
// (user_id, user_name, userRole) di Locals. Seluruh pengecekan ownership di
// controller membaca identitas dari sini, bukan dari state global.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token tidak ditemukan")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token tidak valid")
		}

		if err := validateExpiry(claims); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token expired")
		}

		userID, _ := claims["id"].(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user ID tidak ada di token")
		}
		role, _ := claims["role"].(string)
		userName, _ := claims["user_name"].(string)

		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocUserName, userName)
		c.Locals(helper.LocUserRole, role)

		return c.Next()
	}
}

func validateExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return jwt.ErrTokenInvalidClaims
	}
	// leeway kecil untuk clock skew
	if time.Now().After(time.Unix(int64(exp), 0).Add(30 * time.Second)) {
		return jwt.ErrTokenExpired
	}
	return nil
}
