package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/lms/attendance/dto"
	"kursusku_backend/internals/features/lms/attendance/model"
	"kursusku_backend/internals/features/lms/attendance/service"
	courseModel "kursusku_backend/internals/features/lms/courses/model"
	helper "kursusku_backend/internals/helpers"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validate: validator.New()}
}

/* ===================== MARK (instructor) ===================== */
// POST /api/attendance/mark
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	roster := make([]service.RosterEntryInput, 0, len(req.Roster))
	for _, r := range req.Roster {
		studentID, err := uuid.Parse(r.StudentID)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Student ID tidak valid")
		}
		roster = append(roster, service.RosterEntryInput{StudentID: studentID, Status: r.Status})
	}

	session, err := service.MarkSession(ctrl.DB, courseID, instructorID, roster)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrCourseNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
	case errors.Is(err, service.ErrNotCourseInstructor):
		return helper.Error(c, fiber.StatusForbidden, "Anda bukan instructor course ini")
	case errors.Is(err, service.ErrInvalidStatus):
		return helper.Error(c, fiber.StatusBadRequest, "Status absensi harus present atau absent")
	default:
		log.Println("[ERROR] MarkAttendance:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan absensi")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Absensi berhasil disimpan", fiber.Map{
		"attendance": session,
	})
}

/* ===================== LIST (instructor) ===================== */
// GET /api/attendance/course/:courseId
func (ctrl *AttendanceController) GetCourseAttendance(c *fiber.Ctx) error {
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

	var sessions []model.AttendanceSession
	if err := ctrl.DB.Where("attendance_course_id = ?", courseID).
		Order("attendance_date DESC").Find(&sessions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(sessions) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada record absensi")
	}
	return helper.Success(c, "", fiber.Map{"attendance_records": sessions})
}

/* ===================== REKAP (student) ===================== */
// GET /api/attendance/course/:courseId/percentage
func (ctrl *AttendanceController) GetAttendancePercentage(c *fiber.Ctx) error {
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

	recap, err := service.PercentageFor(ctrl.DB, courseID, studentID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoRecords):
		return helper.Error(c, fiber.StatusNotFound, "Belum ada record absensi untuk kamu di course ini")
	default:
		log.Println("[ERROR] GetAttendancePercentage:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung rekap absensi")
	}

	return helper.Success(c, "", fiber.Map{
		"percentage":    recap.Percentage,
		"total_classes": recap.TotalSessions,
		"attended":      recap.PresentSessions,
		"absent_dates":  recap.AbsentDates,
		"course_id":     courseID,
		"student_id":    studentID,
	})
}
