package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupMiddlewares memasang middleware global (urutan penting: recover dulu).
func SetupMiddlewares(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(CorsMiddleware())

	log.Println("[INFO] Global middlewares terpasang")
}
