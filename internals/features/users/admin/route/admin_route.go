package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/users/admin/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

// AdminRoutes — manajemen akun instructor + statistik dashboard.
func AdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAdminController(db)

	admin := api.Group("/admin")

	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen instructor"), constants.AdminOnly...)
	admin.Post("/instructors", adminOnly, ctrl.CreateInstructor)
	admin.Put("/instructors", adminOnly, ctrl.UpdateInstructor)
	admin.Delete("/instructors", adminOnly, ctrl.DeleteInstructor)
	admin.Get("/dashboard", adminOnly, ctrl.GetDashboardStats)

	admin.Get("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("daftar user"), constants.AdminAndAbove...),
		ctrl.GetAllUsers,
	)
}
