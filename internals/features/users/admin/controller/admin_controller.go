package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/users/admin/dto"
	authModel "kursusku_backend/internals/features/users/auth/model"
	authService "kursusku_backend/internals/features/users/auth/service"
	helper "kursusku_backend/internals/helpers"
)

type AdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db, Validate: validator.New()}
}

// POST /api/admin/instructors
func (ctrl *AdminController) CreateInstructor(c *fiber.Ctx) error {
	var req dto.CreateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := ctrl.DB.Model(&authModel.User{}).Where("user_email = ?", req.Email).Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Instructor sudah terdaftar")
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	instructor := authModel.User{
		UserName:          req.Name,
		UserEmail:         req.Email,
		UserPassword:      hashed,
		UserRole:          constants.RoleInstructor,
		UserFatherName:    optional(req.FatherName),
		UserQualification: optional(req.Qualification),
		UserGender:        optional(req.Gender),
		UserAddress:       optional(req.Address),
		UserCity:          optional(req.City),
		UserState:         optional(req.State),
		UserCountry:       optional(req.Country),
	}
	if err := ctrl.DB.Create(&instructor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusBadRequest, "Instructor sudah terdaftar")
		}
		log.Println("[ERROR] CreateInstructor:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat instructor")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Instructor berhasil dibuat", fiber.Map{
		"instructor": instructor,
	})
}

// GET /api/admin/dashboard
func (ctrl *AdminController) GetDashboardStats(c *fiber.Ctx) error {
	var totalInstructors, totalStudents int64
	if err := ctrl.DB.Model(&authModel.User{}).Where("user_role = ?", constants.RoleInstructor).Count(&totalInstructors).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if err := ctrl.DB.Model(&authModel.User{}).Where("user_role = ?", constants.RoleStudent).Count(&totalStudents).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	return helper.Success(c, "", fiber.Map{
		"total_instructors": totalInstructors,
		"total_students":    totalStudents,
	})
}

// GET /api/admin/users — admin & instructor boleh lihat.
func (ctrl *AdminController) GetAllUsers(c *fiber.Ctx) error {
	type userLite struct {
		UserID    string `gorm:"column:user_id" json:"user_id"`
		UserName  string `gorm:"column:user_name" json:"name"`
		UserEmail string `gorm:"column:user_email" json:"email"`
	}

	var instructors, students []userLite
	if err := ctrl.DB.Model(&authModel.User{}).
		Select("user_id, user_name, user_email").
		Where("user_role = ?", constants.RoleInstructor).
		Find(&instructors).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if err := ctrl.DB.Model(&authModel.User{}).
		Select("user_id, user_name, user_email").
		Where("user_role = ?", constants.RoleStudent).
		Find(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	return helper.Success(c, "", fiber.Map{
		"instructors": instructors,
		"students":    students,
	})
}

// PUT /api/admin/instructors
func (ctrl *AdminController) UpdateInstructor(c *fiber.Ctx) error {
	var req dto.UpdateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var instructor authModel.User
	if err := ctrl.DB.Where("user_email = ? AND user_role = ?", req.Email, constants.RoleInstructor).
		First(&instructor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Instructor tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	updates := map[string]interface{}{}
	if req.NewEmail != "" && req.NewEmail != instructor.UserEmail {
		var count int64
		if err := ctrl.DB.Model(&authModel.User{}).Where("user_email = ?", req.NewEmail).Count(&count).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
		}
		if count > 0 {
			return helper.Error(c, fiber.StatusBadRequest, "Email sudah dipakai")
		}
		updates["user_email"] = req.NewEmail
	}
	if req.Password != "" {
		hashed, err := authService.HashPassword(req.Password)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
		}
		updates["user_password"] = hashed
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&instructor).Updates(updates).Error; err != nil {
			log.Println("[ERROR] UpdateInstructor:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal update instructor")
		}
		// Reload supaya response memuat nilai sesudah update, bukan snapshot lama
		if err := ctrl.DB.First(&instructor, "user_id = ?", instructor.UserID).Error; err != nil {
			log.Println("[ERROR] UpdateInstructor reload:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal update instructor")
		}
	}

	return helper.Success(c, "Instructor berhasil diupdate", fiber.Map{
		"instructor": instructor,
	})
}

// DELETE /api/admin/instructors
func (ctrl *AdminController) DeleteInstructor(c *fiber.Ctx) error {
	var req dto.DeleteInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.Where("user_email = ? AND user_role = ?", req.Email, constants.RoleInstructor).
		Delete(&authModel.User{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal hapus instructor")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Instructor tidak ditemukan")
	}

	return helper.Success(c, "Instructor berhasil dihapus", nil)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
