package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/messages/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func MessageRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMessageController(db)

	messages := api.Group("/messages")

	instructorOnly := authMiddleware.OnlyRoles(constants.RoleErrorInstructor("pesan"), constants.InstructorOnly...)
	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("pesan"), constants.StudentOnly...)

	messages.Post("/send", instructorOnly, ctrl.SendMessage)
	messages.Get("/instructor", instructorOnly, ctrl.GetInstructorMessages)
	messages.Get("/student", studentOnly, ctrl.GetStudentMessages)
}
