package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/courses/dto"
	"kursusku_backend/internals/features/lms/courses/model"
	authModel "kursusku_backend/internals/features/users/auth/model"
	helper "kursusku_backend/internals/helpers"
	ossHelper "kursusku_backend/internals/helpers/oss"
)

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	OSS      *ossHelper.Client // nil bila OSS belum dikonfigurasi
}

func NewCourseController(db *gorm.DB, oss *ossHelper.Client) *CourseController {
	return &CourseController{DB: db, Validate: validator.New(), OSS: oss}
}

/* ===================== CREATE (admin) ===================== */
// POST /api/courses — multipart: field form + file "image"
func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !model.IsValidCategory(req.Category) {
		return helper.Error(c, fiber.StatusBadRequest, "Kategori course tidak dikenal")
	}

	instructorID, err := uuid.Parse(req.InstructorID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "instructor_id tidak valid")
	}

	var instructor authModel.User
	if err := ctrl.DB.Where("user_id = ? AND user_role = ?", instructorID, constants.RoleInstructor).
		First(&instructor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Instructor tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	imageURL := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if ctrl.OSS == nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Object storage belum dikonfigurasi")
		}
		imageURL, err = ctrl.OSS.UploadImageWebP("courses", fh)
		if err != nil {
			log.Println("[ERROR] Upload gambar course:", err)
			return helper.Error(c, fiber.StatusBadRequest, "Upload gambar gagal: "+err.Error())
		}
	}
	if imageURL == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Gambar course wajib diupload")
	}

	course := model.Course{
		CourseName:           req.Name,
		CoursePrice:          req.Price,
		CourseOfferPrice:     req.OfferPrice,
		CourseDescription:    req.Description,
		CourseKeyPoints:      req.KeyPoints,
		CourseHighlights:     req.Highlights,
		CourseCategory:       req.Category,
		CourseInstructorID:   instructor.UserID,
		CourseInstructorName: instructor.UserName,
		CourseImageURL:       imageURL,
	}
	if req.VideoURL != "" {
		course.CourseVideoURL = &req.VideoURL
	}

	if err := ctrl.DB.Create(&course).Error; err != nil {
		log.Println("[ERROR] CreateCourse:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course berhasil dibuat", fiber.Map{
		"course": course,
	})
}

/* ===================== READ ===================== */

// GET /api/courses
func (ctrl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	var courses []model.Course
	if err := ctrl.DB.Order("created_at DESC").Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(courses) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada course")
	}
	return helper.Success(c, "", fiber.Map{"courses": courses})
}

// GET /api/courses/:courseId
func (ctrl *CourseController) GetCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var course model.Course
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	return helper.Success(c, "", fiber.Map{"course": course})
}

// GET /api/courses/instructor — course milik instructor yang login.
func (ctrl *CourseController) GetInstructorCourses(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var courses []model.Course
	if err := ctrl.DB.Where("course_instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(courses) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Instructor belum punya course")
	}
	return helper.Success(c, "", fiber.Map{"courses": courses})
}

// GET /api/courses/:courseId/students — roster student ter-enroll.
func (ctrl *CourseController) GetCourseStudents(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	type studentLite struct {
		UserID    string `gorm:"column:user_id" json:"user_id"`
		UserName  string `gorm:"column:user_name" json:"name"`
		UserEmail string `gorm:"column:user_email" json:"email"`
	}

	var students []studentLite
	if err := ctrl.DB.Table("course_enrollments").
		Select("users.user_id, users.user_name, users.user_email").
		Joins("JOIN users ON users.user_id = course_enrollments.course_enrollment_student_id").
		Where("course_enrollments.course_enrollment_course_id = ? AND users.user_role = ?", courseID, constants.RoleStudent).
		Scan(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(students) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada student yang enroll di course ini")
	}
	return helper.Success(c, "", fiber.Map{"students": students})
}

/* ===================== UPDATE / DELETE (admin) ===================== */

// PUT /api/courses/:courseId
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Category != nil && !model.IsValidCategory(*req.Category) {
		return helper.Error(c, fiber.StatusBadRequest, "Kategori course tidak dikenal")
	}

	var course model.Course
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["course_name"] = *req.Name
	}
	if req.Price != nil {
		updates["course_price"] = *req.Price
	}
	if req.OfferPrice != nil {
		updates["course_offer_price"] = *req.OfferPrice
	}
	if req.Description != nil {
		updates["course_description"] = *req.Description
	}
	if req.KeyPoints != nil {
		updates["course_key_points"] = pqArray(*req.KeyPoints)
	}
	if req.Highlights != nil {
		updates["course_highlights"] = pqArray(*req.Highlights)
	}
	if req.Category != nil {
		updates["course_category"] = *req.Category
	}
	if req.VideoURL != nil {
		updates["course_video_url"] = *req.VideoURL
	}

	// Gambar baru (opsional, multipart)
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if ctrl.OSS == nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Object storage belum dikonfigurasi")
		}
		imageURL, err := ctrl.OSS.UploadImageWebP("courses", fh)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Upload gambar gagal: "+err.Error())
		}
		updates["course_image_url"] = imageURL
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&course).Updates(updates).Error; err != nil {
			log.Println("[ERROR] UpdateCourse:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal update course")
		}
		// Reload supaya response memuat nilai sesudah update, bukan snapshot lama
		if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
			log.Println("[ERROR] UpdateCourse reload:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal update course")
		}
	}

	return helper.Success(c, "Course berhasil diupdate", fiber.Map{"course": course})
}

// DELETE /api/courses/:courseId — membership ikut terhapus (cascade).
func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("course_id = ?", courseID).Delete(&model.Course{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("course_enrollment_course_id = ?", courseID).
			Delete(&model.CourseEnrollment{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		log.Println("[ERROR] DeleteCourse:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal hapus course")
	}

	return helper.Success(c, "Course berhasil dihapus", nil)
}

func pqArray(items []string) pq.StringArray {
	return pq.StringArray(items)
}
