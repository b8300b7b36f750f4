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
	courseModel "kursusku_backend/internals/features/lms/courses/model"
	"kursusku_backend/internals/features/lms/exams/dto"
	"kursusku_backend/internals/features/lms/exams/model"
	"kursusku_backend/internals/features/lms/exams/service"
	"kursusku_backend/internals/features/lms/grading"
	helper "kursusku_backend/internals/helpers"
)

type ExamController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewExamController(db *gorm.DB) *ExamController {
	return &ExamController{DB: db, Validate: validator.New()}
}

/* ===================== CREATE (instructor) ===================== */
// POST /api/exams
func (ctrl *ExamController) CreateExam(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateExamRequest
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

	exam, err := service.CreateExam(ctrl.DB, service.CreateInput{
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
		log.Println("[ERROR] CreateExam:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat exam")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Exam berhasil dibuat", fiber.Map{
		"exam": exam,
	})
}

/* ===================== READ (instructor) ===================== */

// GET /api/exams/instructor
func (ctrl *ExamController) GetInstructorExams(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var exams []model.Exam
	if err := ctrl.DB.Where("exam_instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&exams).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(exams) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada exam")
	}
	return helper.Success(c, "", fiber.Map{"exams": exams})
}

// GET /api/exams/course/:courseId — instructor pemilik course.
func (ctrl *ExamController) GetCourseExams(c *fiber.Ctx) error {
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

	var exams []model.Exam
	if err := ctrl.DB.Where("exam_course_id = ?", courseID).
		Order("exam_number ASC").Find(&exams).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(exams) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada exam di course ini")
	}
	return helper.Success(c, "", fiber.Map{"exams": exams})
}

/* ===================== READ (student) ===================== */

// GET /api/exams/student — seluruh exam dari course yang di-enroll.
func (ctrl *ExamController) GetStudentExams(c *fiber.Ctx) error {
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

	var exams []model.Exam
	if err := ctrl.DB.Where("exam_course_id IN ?", courseIDs).
		Order("created_at DESC").Find(&exams).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(exams) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada exam di course yang kamu enroll")
	}
	return helper.Success(c, "", fiber.Map{"exams": ctrl.studentViews(exams)})
}

// GET /api/exams/student/course/:courseId
func (ctrl *ExamController) GetStudentCourseExams(c *fiber.Ctx) error {
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

	var exams []model.Exam
	if err := ctrl.DB.Where("exam_course_id = ?", courseID).
		Order("exam_number ASC").Find(&exams).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(exams) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada exam di course ini")
	}
	return helper.Success(c, "", fiber.Map{"exams": ctrl.studentViews(exams)})
}

// GET /api/exams/:examId/student — detail satu exam + sisa attempt.
func (ctrl *ExamController) GetStudentExam(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Exam ID tidak valid")
	}

	var exam model.Exam
	if err := ctrl.DB.First(&exam, "exam_id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Exam tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	enrolled, err := courseModel.IsEnrolled(ctrl.DB, studentID, exam.ExamCourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if !enrolled {
		return helper.Error(c, fiber.StatusForbidden, "Kamu belum enroll di course ini")
	}

	var used int64
	if err := ctrl.DB.Model(&model.ExamResult{}).
		Where("exam_result_student_id = ? AND exam_result_exam_id = ?", studentID, examID).
		Count(&used).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	views := ctrl.studentViews([]model.Exam{exam})
	return helper.Success(c, "", fiber.Map{
		"exam":               views[0],
		"attempts_used":      used,
		"attempts_remaining": service.MaxAttempts - used,
	})
}

/* ===================== SUBMIT (student) ===================== */

// POST /api/exams/:examId/submit
func (ctrl *ExamController) SubmitExam(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Exam ID tidak valid")
	}

	var req dto.SubmitExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mode := grading.ModeFromString(configs.GradingTotalMode)
	res, err := service.SubmitExam(ctrl.DB, studentID, examID, dto.ToGradingAnswers(req.Answers), mode)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptySubmission):
		return helper.Error(c, fiber.StatusBadRequest, "Format jawaban tidak valid, harus array dan tidak kosong")
	case errors.Is(err, service.ErrExamNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Exam tidak ditemukan")
	case errors.Is(err, service.ErrAttemptsExhausted):
		return helper.Error(c, fiber.StatusBadRequest, "Batas 3x attempt untuk exam ini sudah habis")
	default:
		log.Println("[ERROR] SubmitExam:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal submit exam")
	}

	data := fiber.Map{
		"result":             res.Result,
		"attempts_used":      res.AttemptsUsed,
		"attempts_remaining": service.MaxAttempts - res.AttemptsUsed,
	}
	if res.Result.ExamResultCertificateEligible {
		cert, err := ctrl.certificateData(studentID, res.Result.ExamResultCourseID)
		if err != nil {
			log.Println("[ERROR] Gagal mengambil data sertifikat:", err)
		} else {
			data["certificate_data"] = cert
		}
	}

	msg := fmt.Sprintf("Berhasil submit! Nilai kamu %.0f/%.0f (%.2f%%)",
		res.Grading.ObtainedMarks, res.Grading.TotalMarks, res.Grading.Percentage)
	return helper.Success(c, msg, data)
}

// certificateData — nama student + nama course untuk render sertifikat di client.
func (ctrl *ExamController) certificateData(studentID, courseID uuid.UUID) (fiber.Map, error) {
	var studentName string
	if err := ctrl.DB.Table("users").
		Select("user_name").
		Where("user_id = ?", studentID).
		Take(&studentName).Error; err != nil {
		return nil, err
	}

	var courseName string
	if err := ctrl.DB.Table("courses").
		Select("course_name").
		Where("course_id = ?", courseID).
		Take(&courseName).Error; err != nil {
		return nil, err
	}

	return fiber.Map{
		"student_name": studentName,
		"course_name":  courseName,
	}, nil
}

/* ===================== REKAP NILAI (instructor) ===================== */

// GET /api/exams/course/:courseId/marks
func (ctrl *ExamController) GetCourseWiseStudentMarks(c *fiber.Ctx) error {
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
		StudentName string  `gorm:"column:user_name" json:"student_name"`
		ExamNumber  int     `gorm:"column:exam_number" json:"exam_number"`
		Score       float64 `gorm:"column:exam_result_score" json:"score"`
		TotalMarks  float64 `gorm:"column:exam_result_total_marks" json:"total_marks"`
	}

	var results []markRow
	if err := ctrl.DB.Table("exam_results").
		Select("users.user_name, exams.exam_number, exam_results.exam_result_score, exam_results.exam_result_total_marks").
		Joins("JOIN users ON users.user_id = exam_results.exam_result_student_id").
		Joins("JOIN exams ON exams.exam_id = exam_results.exam_result_exam_id").
		Where("exam_results.exam_result_course_id = ?", courseID).
		Scan(&results).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	return helper.Success(c, "", fiber.Map{"results": results})
}

func (ctrl *ExamController) studentViews(exams []model.Exam) []fiber.Map {
	views := make([]fiber.Map, 0, len(exams))
	for _, e := range exams {
		questions, err := grading.QuestionsFromJSON(e.ExamQuestions)
		if err != nil {
			log.Println("[ERROR] Gagal decode bank soal:", err)
			continue
		}
		views = append(views, fiber.Map{
			"exam_id":                     e.ExamID,
			"exam_course_id":              e.ExamCourseID,
			"exam_instructions":           e.ExamInstructions,
			"exam_timer":                  e.ExamTimerMinutes,
			"exam_number":                 e.ExamNumber,
			"exam_is_certificate_enabled": e.ExamIsCertificateEnabled,
			"questions":                   dto.ToStudentQuestions(questions),
		})
	}
	return views
}
