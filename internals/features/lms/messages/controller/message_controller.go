package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/lms/courses/model"
	"kursusku_backend/internals/features/lms/messages/dto"
	"kursusku_backend/internals/features/lms/messages/model"
	helper "kursusku_backend/internals/helpers"
)

const sentAtLayout = "2006-01-02 03:04 PM"

type MessageController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	loc      *time.Location
}

func NewMessageController(db *gorm.DB) *MessageController {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return &MessageController{DB: db, Validate: validator.New(), loc: loc}
}

/* ===================== SEND (instructor) ===================== */
// POST /api/messages/send
func (ctrl *MessageController) SendMessage(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SendMessageRequest
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

	msg := model.Message{
		MessageCourseID:     courseID,
		MessageInstructorID: instructorID,
		MessageContent:      req.Content,
	}
	if err := ctrl.DB.Create(&msg).Error; err != nil {
		log.Println("[ERROR] SendMessage:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengirim pesan")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pesan berhasil dikirim", fiber.Map{
		"message_id": msg.MessageID,
	})
}

/* ===================== LIST (student) ===================== */
// GET /api/messages/student — pesan dari semua course yang di-enroll.
func (ctrl *MessageController) GetStudentMessages(c *fiber.Ctx) error {
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

	type row struct {
		MessageID      uuid.UUID `gorm:"column:message_id"`
		Content        string    `gorm:"column:message_content"`
		CourseName     string    `gorm:"column:course_name"`
		InstructorName string    `gorm:"column:user_name"`
		SentAt         time.Time `gorm:"column:message_sent_at"`
	}

	var rows []row
	if err := ctrl.DB.Table("messages").
		Select("messages.message_id, messages.message_content, courses.course_name, users.user_name, messages.message_sent_at").
		Joins("JOIN courses ON courses.course_id = messages.message_course_id").
		Joins("JOIN users ON users.user_id = messages.message_instructor_id").
		Where("messages.message_course_id IN ?", courseIDs).
		Order("messages.message_sent_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(rows) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada pesan")
	}

	views := make([]dto.MessageView, 0, len(rows))
	for _, r := range rows {
		views = append(views, dto.MessageView{
			MessageID:      r.MessageID.String(),
			Text:           r.Content,
			CourseName:     r.CourseName,
			InstructorName: r.InstructorName,
			SentAt:         r.SentAt.In(ctrl.loc).Format(sentAtLayout),
		})
	}
	return helper.Success(c, "", fiber.Map{"messages": views})
}

/* ===================== LIST (instructor) ===================== */
// GET /api/messages/instructor
func (ctrl *MessageController) GetInstructorMessages(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	type row struct {
		MessageID  uuid.UUID `gorm:"column:message_id"`
		Content    string    `gorm:"column:message_content"`
		CourseName string    `gorm:"column:course_name"`
		SentAt     time.Time `gorm:"column:message_sent_at"`
	}

	var rows []row
	if err := ctrl.DB.Table("messages").
		Select("messages.message_id, messages.message_content, courses.course_name, messages.message_sent_at").
		Joins("JOIN courses ON courses.course_id = messages.message_course_id").
		Where("messages.message_instructor_id = ?", instructorID).
		Order("messages.message_sent_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(rows) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada pesan")
	}

	views := make([]dto.MessageView, 0, len(rows))
	for _, r := range rows {
		views = append(views, dto.MessageView{
			MessageID:  r.MessageID.String(),
			Text:       r.Content,
			CourseName: r.CourseName,
			SentAt:     r.SentAt.In(ctrl.loc).Format(sentAtLayout),
		})
	}
	return helper.Success(c, "", fiber.Map{"messages": views})
}
