package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	"kursusku_backend/internals/features/lms/assessments/dto"
	"kursusku_backend/internals/features/lms/assessments/model"
	"kursusku_backend/internals/features/lms/assessments/service"
	courseModel "kursusku_backend/internals/features/lms/courses/model"
	"kursusku_backend/internals/features/lms/grading"
	helper "kursusku_backend/internals/helpers"
)

type AssessmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	return &AssessmentController{DB: db, Validate: validator.New()}
}

/* ===================== CREATE (instructor) ===================== */
// POST /api/assessments
func (ctrl *AssessmentController) CreateAssessment(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := dto.CheckAnswerKeys(req.Questions); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	certEnabled := true
	if req.IsCertificateEnabled != nil {
		certEnabled = *req.IsCertificateEnabled
	}

	assessment, err := service.CreateAssessment(ctrl.DB, service.CreateInput{
		CourseID:           courseID,
		InstructorID:       instructorID,
		Instructions:       req.Instructions,
		TimerMinutes:       req.Timer,
		Questions:          dto.ToGrading(req.Questions),
		CertificateEnabled: certEnabled,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrCourseNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
	case errors.Is(err, service.ErrNotCourseInstructor):
		return helper.Error(c, fiber.StatusForbidden, "Anda bukan instructor course ini")
	default:
		log.Println("[ERROR] CreateAssessment:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat assessment")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Assessment berhasil dibuat", fiber.Map{
		"assessment": assessment,
	})
}

/* ===================== READ (instructor) ===================== */

// GET /api/assessments/instructor
func (ctrl *AssessmentController) GetInstructorAssessments(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var assessments []model.Assessment
	if err := ctrl.DB.Where("assessment_instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&assessments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(assessments) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada assessment")
	}
	return helper.Success(c, "", fiber.Map{"assessments": assessments})
}

// GET /api/assessments/course/:courseId — instructor pemilik course.
func (ctrl *AssessmentController) GetCourseAssessments(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var course courseModel.Course
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if course.CourseInstructorID != instructorID {
		return helper.Error(c, fiber.StatusForbidden, "Anda bukan instructor course ini")
	}

	var assessments []model.Assessment
	if err := ctrl.DB.Where("assessment_course_id = ?", courseID).
		Order("assessment_number ASC").Find(&assessments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(assessments) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada assessment di course ini")
	}
	return helper.Success(c, "", fiber.Map{"assessments": assessments})
}

/* ===================== READ (student) ===================== */

// GET /api/assessments/student — seluruh assessment dari course yang di-enroll.
func (ctrl *AssessmentController) GetStudentAssessments(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	courseIDs, err := courseModel.EnrolledCourseIDs(ctrl.DB, studentID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(courseIDs) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum enroll course apapun")
	}

	var assessments []model.Assessment
	if err := ctrl.DB.Where("assessment_course_id IN ?", courseIDs).
		Order("created_at DESC").Find(&assessments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(assessments) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada assessment di course yang kamu enroll")
	}
	return helper.Success(c, "", fiber.Map{"assessments": ctrl.studentViews(assessments)})
}

// GET /api/assessments/student/course/:courseId
func (ctrl *AssessmentController) GetStudentCourseAssessments(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	enrolled, err := courseModel.IsEnrolled(ctrl.DB, studentID, courseID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if !enrolled {
		return helper.Error(c, fiber.StatusForbidden, "Kamu belum enroll di course ini")
	}

	var assessments []model.Assessment
	if err := ctrl.DB.Where("assessment_course_id = ?", courseID).
		Order("assessment_number ASC").Find(&assessments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(assessments) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada assessment di course ini")
	}
	return helper.Success(c, "", fiber.Map{"assessments": ctrl.studentViews(assessments)})
}

// GET /api/assessments/:assessmentId/student — detail satu assessment.
func (ctrl *AssessmentController) GetStudentAssessment(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Assessment ID tidak valid")
	}

	var assessment model.Assessment
	if err := ctrl.DB.First(&assessment, "assessment_id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Assessment tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	enrolled, err := courseModel.IsEnrolled(ctrl.DB, studentID, assessment.AssessmentCourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if !enrolled {
		return helper.Error(c, fiber.StatusForbidden, "Kamu belum enroll di course ini")
	}

	views := ctrl.studentViews([]model.Assessment{assessment})
	return helper.Success(c, "", fiber.Map{"assessment": views[0]})
}

/* ===================== SUBMIT (student) ===================== */

// POST /api/assessments/:assessmentId/submit
func (ctrl *AssessmentController) SubmitAssessment(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Assessment ID tidak valid")
	}

	var req dto.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mode := grading.ModeFromString(configs.GradingTotalMode)
	res, err := service.SubmitAssessment(ctrl.DB, studentID, assessmentID, dto.ToGradingAnswers(req.Answers), mode)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptySubmission):
		return helper.Error(c, fiber.StatusBadRequest, "Format jawaban tidak valid, harus array dan tidak kosong")
	case errors.Is(err, service.ErrAssessmentNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Assessment tidak ditemukan")
	case errors.Is(err, service.ErrAlreadySubmitted):
		return helper.Error(c, fiber.StatusBadRequest, "Kamu sudah pernah submit assessment ini")
	default:
		log.Println("[ERROR] SubmitAssessment:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal submit assessment")
	}

	msg := fmt.Sprintf("Berhasil submit! Nilai kamu %.0f/%.0f (%.2f%%)",
		res.Grading.ObtainedMarks, res.Grading.TotalMarks, res.Grading.Percentage)
	return helper.Success(c, msg, fiber.Map{"result": res.Result})
}

/* ===================== REKAP NILAI (instructor) ===================== */

// GET /api/assessments/course/:courseId/marks
func (ctrl *AssessmentController) GetCourseWiseStudentMarks(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var course courseModel.Course
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if course.CourseInstructorID != instructorID {
		return helper.Error(c, fiber.StatusForbidden, "Anda tidak berhak melihat rekap course ini")
	}

	type markRow struct {
		StudentName      string  `gorm:"column:user_name" json:"student_name"`
		AssessmentNumber int     `gorm:"column:assessment_number" json:"assessment_number"`
		Score            float64 `gorm:"column:assessment_result_score" json:"score"`
		TotalMarks       float64 `gorm:"column:assessment_result_total_marks" json:"total_marks"`
	}

	var results []markRow
	if err := ctrl.DB.Table("assessment_results").
		Select("users.user_name, assessments.assessment_number, assessment_results.assessment_result_score, assessment_results.assessment_result_total_marks").
		Joins("JOIN users ON users.user_id = assessment_results.assessment_result_student_id").
		Joins("JOIN assessments ON assessments.assessment_id = assessment_results.assessment_result_assessment_id").
		Where("assessment_results.assessment_result_course_id = ?", courseID).
		Scan(&results).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	return helper.Success(c, "", fiber.Map{"results": results})
}

func (ctrl *AssessmentController) studentViews(assessments []model.Assessment) []fiber.Map {
	views := make([]fiber.Map, 0, len(assessments))
	for _, a := range assessments {
		questions, err := grading.QuestionsFromJSON(a.AssessmentQuestions)
		if err != nil {
			log.Println("[ERROR] Gagal decode bank soal:", err)
			continue
		}
		views = append(views, fiber.Map{
			"assessment_id":           a.AssessmentID,
			"assessment_course_id":    a.AssessmentCourseID,
			"assessment_instructions": a.AssessmentInstructions,
			"assessment_timer":        a.AssessmentTimerMinutes,
			"assessment_number":       a.AssessmentNumber,
			"questions":               dto.ToStudentQuestions(questions),
		})
	}
	return views
}
