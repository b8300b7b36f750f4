package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/attendance/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	attendance := api.Group("/attendance")

	instructorOnly := authMiddleware.OnlyRoles(constants.RoleErrorInstructor("absensi"), constants.InstructorOnly...)
	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("absensi"), constants.StudentOnly...)

	attendance.Post("/mark", instructorOnly, ctrl.MarkAttendance)
	attendance.Get("/course/:courseId", instructorOnly, ctrl.GetCourseAttendance)
	attendance.Get("/course/:courseId/percentage", studentOnly, ctrl.GetAttendancePercentage)
}
