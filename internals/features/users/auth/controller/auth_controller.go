package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/users/auth/dto"
	"kursusku_backend/internals/features/users/auth/model"
	"kursusku_backend/internals/features/users/auth/service"
	helper "kursusku_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/auth/send-otp
func (ctrl *AuthController) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Email yang sudah terdaftar tidak boleh request OTP signup
	var count int64
	if err := ctrl.DB.Model(&model.User{}).Where("user_email = ?", req.Email).Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "User sudah terdaftar")
	}

	if err := service.IssueOTP(ctrl.DB, req.Email); err != nil {
		log.Println("[ERROR] IssueOTP:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengirim OTP")
	}

	return helper.Success(c, "OTP berhasil dikirim", nil)
}

// POST /api/auth/verify-otp
func (ctrl *AuthController) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	switch err := service.VerifyOTP(ctrl.DB, req.Email, req.OTP); {
	case err == nil:
		return helper.Success(c, "OTP terverifikasi, silakan lanjut signup", nil)
	case errors.Is(err, service.ErrOTPNotFound):
		return helper.Error(c, fiber.StatusBadRequest, "OTP tidak ditemukan, silakan request ulang")
	case errors.Is(err, service.ErrOTPInvalid):
		return helper.Error(c, fiber.StatusBadRequest, "OTP tidak valid")
	case errors.Is(err, service.ErrOTPExpired):
		return helper.Error(c, fiber.StatusBadRequest, "OTP sudah expired")
	default:
		log.Println("[ERROR] VerifyOTP:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}

// POST /api/auth/register — hanya untuk student, setelah OTP terverifikasi.
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	verified, err := service.IsEmailVerified(ctrl.DB, req.Email)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if !verified {
		return helper.Error(c, fiber.StatusBadRequest, "Email belum diverifikasi, selesaikan verifikasi OTP dulu")
	}

	hashed, err := service.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := model.User{
		UserName:     req.Name,
		UserEmail:    req.Email,
		UserPassword: hashed,
		UserRole:     constants.RoleStudent,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusBadRequest, "User sudah terdaftar")
		}
		log.Println("[ERROR] Register:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	service.ClearOTP(ctrl.DB, req.Email)

	token, err := service.GenerateAccessToken(&user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Signup berhasil", fiber.Map{
		"token":    token,
		"role":     user.UserRole,
		"username": user.UserName,
		"user_id":  user.UserID,
	})
}

// POST /api/auth/login — semua role.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.User
	if err := ctrl.DB.Where("user_email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusBadRequest, "Email atau password salah")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	if !service.CheckPassword(user.UserPassword, req.Password) {
		return helper.Error(c, fiber.StatusBadRequest, "Email atau password salah")
	}

	token, err := service.GenerateAccessToken(&user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", fiber.Map{
		"token":    token,
		"role":     user.UserRole,
		"username": user.UserName,
		"user_id":  user.UserID,
		"email":    user.UserEmail,
	})
}
