package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kursusku_backend/internals/constants"
	authModel "kursusku_backend/internals/features/users/auth/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authModel.User{}))
	return db
}

func seedInstructor(t *testing.T, db *gorm.DB, email string) authModel.User {
	t.Helper()
	user := authModel.User{
		UserName:     "Pak Budi",
		UserEmail:    email,
		UserPassword: "hashed",
		UserRole:     constants.RoleInstructor,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestUpdateInstructorResponseHasNewEmail(t *testing.T) {
	db := newTestDB(t)
	seedInstructor(t, db, "budi@kursusku.id")

	ctrl := NewAdminController(db)
	app := fiber.New()
	app.Put("/api/admin/instructors", ctrl.UpdateInstructor)

	body, err := json.Marshal(fiber.Map{
		"email":     "budi@kursusku.id",
		"new_email": "budi.baru@kursusku.id",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/admin/instructors", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success    bool           `json:"success"`
		Instructor authModel.User `json:"instructor"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	// Body harus memuat email sesudah update, bukan snapshot sebelum Updates
	assert.Equal(t, "budi.baru@kursusku.id", envelope.Instructor.UserEmail)

	var stored authModel.User
	require.NoError(t, db.First(&stored, "user_email = ?", "budi.baru@kursusku.id").Error)
	assert.Equal(t, "Pak Budi", stored.UserName)
}

func TestUpdateInstructorEmailTaken(t *testing.T) {
	db := newTestDB(t)
	seedInstructor(t, db, "budi@kursusku.id")
	seedInstructor(t, db, "siti@kursusku.id")

	ctrl := NewAdminController(db)
	app := fiber.New()
	app.Put("/api/admin/instructors", ctrl.UpdateInstructor)

	body, err := json.Marshal(fiber.Map{
		"email":     "budi@kursusku.id",
		"new_email": "siti@kursusku.id",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/admin/instructors", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateInstructorNotFound(t *testing.T) {
	db := newTestDB(t)

	ctrl := NewAdminController(db)
	app := fiber.New()
	app.Put("/api/admin/instructors", ctrl.UpdateInstructor)

	body, err := json.Marshal(fiber.Map{"email": "hantu@kursusku.id"})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/admin/instructors", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
