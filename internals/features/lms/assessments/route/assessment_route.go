package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/assessments/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func AssessmentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAssessmentController(db)

	assessments := api.Group("/assessments")

	instructorOnly := authMiddleware.OnlyRoles(constants.RoleErrorInstructor("assessment"), constants.InstructorOnly...)
	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("assessment"), constants.StudentOnly...)

	assessments.Post("/", instructorOnly, ctrl.CreateAssessment)
	assessments.Get("/instructor", instructorOnly, ctrl.GetInstructorAssessments)
	assessments.Get("/course/:courseId", instructorOnly, ctrl.GetCourseAssessments)
	assessments.Get("/course/:courseId/marks", instructorOnly, ctrl.GetCourseWiseStudentMarks)

	assessments.Get("/student", studentOnly, ctrl.GetStudentAssessments)
	assessments.Get("/student/course/:courseId", studentOnly, ctrl.GetStudentCourseAssessments)
	assessments.Get("/:assessmentId/student", studentOnly, ctrl.GetStudentAssessment)
	assessments.Post("/:assessmentId/submit", studentOnly, ctrl.SubmitAssessment)
}
