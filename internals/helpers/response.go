package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Semua response memakai amplop {success, message, ...data} supaya kompatibel
// dengan kontrak API lama.

// Success response default 200
func Success(c *fiber.Ctx, message string, data fiber.Map) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// SuccessWithCode untuk custom code (contoh 201 untuk created)
func SuccessWithCode(c *fiber.Ctx, code int, message string, data fiber.Map) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

// Error response sederhana
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// ValidationError khusus error validator.v10, kirim detail per field
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validasi gagal",
		"errors":  errorsMap,
	})
}

// FromFiberError menerjemahkan *fiber.Error ke amplop standar.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// FiberErrorHandler dipasang di fiber.Config.ErrorHandler supaya error
// yang lolos dari controller — fiber.NewError dari middleware auth,
// panic yang ditangkap recover, route 404 — tetap keluar dengan amplop
// {success, message}, bukan body text/plain bawaan Fiber.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
