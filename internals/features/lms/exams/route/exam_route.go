package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/exams/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func ExamRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewExamController(db)

	exams := api.Group("/exams")

	instructorOnly := authMiddleware.OnlyRoles(constants.RoleErrorInstructor("exam"), constants.InstructorOnly...)
	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("exam"), constants.StudentOnly...)

	exams.Post("/", instructorOnly, ctrl.CreateExam)
	exams.Get("/instructor", instructorOnly, ctrl.GetInstructorExams)
	exams.Get("/course/:courseId", instructorOnly, ctrl.GetCourseExams)
	exams.Get("/course/:courseId/marks", instructorOnly, ctrl.GetCourseWiseStudentMarks)

	exams.Get("/student", studentOnly, ctrl.GetStudentExams)
	exams.Get("/student/course/:courseId", studentOnly, ctrl.GetStudentCourseExams)
	exams.Get("/:examId/student", studentOnly, ctrl.GetStudentExam)
	exams.Post("/:examId/submit", studentOnly, ctrl.SubmitExam)
}
