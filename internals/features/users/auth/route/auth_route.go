package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/auth/controller"
)

// AuthRoutes — endpoint publik (tanpa middleware auth).
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/send-otp", ctrl.SendOTP)
	auth.Post("/verify-otp", ctrl.VerifyOTP)
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", ctrl.Login)
}
