package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/courses/controller"
	ossHelper "kursusku_backend/internals/helpers/oss"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func CourseRoutes(api fiber.Router, db *gorm.DB, oss *ossHelper.Client) {
	ctrl := controller.NewCourseController(db, oss)

	courses := api.Group("/courses")

	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen course"), constants.AdminOnly...)
	instructorOnly := authMiddleware.OnlyRoles(constants.RoleErrorInstructor("course instructor"), constants.InstructorOnly...)

	courses.Post("/", adminOnly, ctrl.CreateCourse)
	courses.Get("/", ctrl.GetAllCourses)
	courses.Get("/instructor", instructorOnly, ctrl.GetInstructorCourses)
	courses.Get("/:courseId", ctrl.GetCourse)
	courses.Get("/:courseId/students",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("roster course"), constants.AdminAndAbove...),
		ctrl.GetCourseStudents,
	)
	courses.Put("/:courseId", adminOnly, ctrl.UpdateCourse)
	courses.Delete("/:courseId", adminOnly, ctrl.DeleteCourse)
}
