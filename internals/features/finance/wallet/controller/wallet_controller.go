package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/finance/wallet/dto"
	"kursusku_backend/internals/features/finance/wallet/service"
	helper "kursusku_backend/internals/helpers"
)

type WalletController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewWalletController(db *gorm.DB) *WalletController {
	return &WalletController{DB: db, Validate: validator.New()}
}

/* ===================== ADD MONEY ===================== */
// POST /api/wallet/add — credit langsung tanpa payment gateway.
func (ctrl *WalletController) AddMoney(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AddMoneyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.Credit(ctrl.DB, userID, req.Amount); err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return helper.Error(c, fiber.StatusBadRequest, "Jumlah harus lebih dari nol")
		}
		log.Println("[ERROR] AddMoney:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menambah saldo")
	}

	balance, err := service.Balance(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] AddMoney balance:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca saldo")
	}

	return helper.Success(c, "Saldo berhasil ditambahkan", fiber.Map{
		"balance": balance,
	})
}

/* ===================== BALANCE & HISTORY ===================== */

// GET /api/wallet/balance
func (ctrl *WalletController) GetBalance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	balance, err := service.Balance(ctrl.DB, userID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrWalletNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Wallet tidak ditemukan")
	default:
		log.Println("[ERROR] GetBalance:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	return helper.Success(c, "", fiber.Map{"balance": balance})
}

// GET /api/wallet/transactions
func (ctrl *WalletController) GetTransactions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	txns, err := service.History(ctrl.DB, userID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrWalletNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Wallet tidak ditemukan")
	default:
		log.Println("[ERROR] GetTransactions:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	return helper.Success(c, "", fiber.Map{"transactions": txns})
}

/* ===================== ENROLL (student) ===================== */
// POST /api/wallet/enroll — bayar dengan saldo lalu jadi member course.
func (ctrl *WalletController) EnrollCourse(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.EnrollCourseRequest
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

	result, err := service.Enroll(ctrl.DB, studentID, courseID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrCourseNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return helper.Error(c, fiber.StatusBadRequest, "Kamu sudah ter-enroll di course ini")
	case errors.Is(err, service.ErrInsufficientFunds):
		return helper.Error(c, fiber.StatusBadRequest, "Saldo tidak mencukupi")
	default:
		log.Println("[ERROR] EnrollCourse:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal enroll course")
	}

	return helper.Success(c,
		fmt.Sprintf("Berhasil enroll. Saldo terpotong %d", result.OfferPrice),
		fiber.Map{
			"course_id":      result.CourseID,
			"wallet_balance": result.NewBalance,
		})
}

/* ===================== TOP UP (Midtrans) ===================== */

// POST /api/wallet/topup — buat snap token; saldo masuk via webhook.
func (ctrl *WalletController) CreateTopUp(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userName := helper.GetUserNameFromToken(c)

	var req dto.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	email := req.Email
	if email == "" {
		var row struct {
			UserEmail string `gorm:"column:user_email"`
		}
		if err := ctrl.DB.Table("users").
			Select("user_email").
			Where("user_id = ?", userID).
			Take(&row).Error; err == nil {
			email = row.UserEmail
		}
	}

	topup, err := service.CreateTopUp(ctrl.DB, userID, req.Amount, userName, email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return helper.Error(c, fiber.StatusBadRequest, "Jumlah harus lebih dari nol")
		}
		log.Println("[ERROR] CreateTopUp:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token pembayaran")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Silakan lanjutkan pembayaran", fiber.Map{
		"order_id":   topup.WalletTopUpOrderID,
		"snap_token": topup.WalletTopUpPaymentToken,
	})
}

// POST /api/wallet/topup/notification — webhook Midtrans, tanpa auth.
func (ctrl *WalletController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Webhook tidak valid")
	}

	orderID, _ := body["order_id"].(string)
	transactionStatus, _ := body["transaction_status"].(string)
	if orderID == "" || transactionStatus == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Webhook tidak valid")
	}

	if err := service.HandleTopUpNotification(ctrl.DB, orderID, transactionStatus); err != nil {
		if errors.Is(err, service.ErrTopUpNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Order tidak ditemukan")
		}
		log.Println("[ERROR] Webhook top-up gagal:", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}
