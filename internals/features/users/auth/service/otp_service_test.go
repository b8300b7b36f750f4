package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kursusku_backend/internals/features/users/auth/model"
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
	require.NoError(t, db.AutoMigrate(&model.OTP{}))
	return db
}

func currentCode(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	var rec model.OTP
	require.NoError(t, db.First(&rec, "otp_email = ?", email).Error)
	return rec.OTPCode
}

func TestGenerateOTPSixDigits(t *testing.T) {
	code, err := GenerateOTP()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestIssueAndVerifyOTP(t *testing.T) {
	db := newTestDB(t)
	email := "siswa@example.com"

	require.NoError(t, IssueOTP(db, email))

	verified, err := IsEmailVerified(db, email)
	require.NoError(t, err)
	assert.False(t, verified)

	require.NoError(t, VerifyOTP(db, email, currentCode(t, db, email)))

	verified, err = IsEmailVerified(db, email)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	db := newTestDB(t)
	email := "siswa@example.com"
	require.NoError(t, IssueOTP(db, email))

	err := VerifyOTP(db, email, "000000x")
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	db := newTestDB(t)

	err := VerifyOTP(db, "tidakada@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestVerifyOTPExpired(t *testing.T) {
	db := newTestDB(t)
	email := "siswa@example.com"
	require.NoError(t, IssueOTP(db, email))

	require.NoError(t, db.Model(&model.OTP{}).
		Where("otp_email = ?", email).
		Update("otp_expires_at", time.Now().Add(-time.Minute)).Error)

	err := VerifyOTP(db, email, currentCode(t, db, email))
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestReissueOTPResetsVerification(t *testing.T) {
	db := newTestDB(t)
	email := "siswa@example.com"

	require.NoError(t, IssueOTP(db, email))
	require.NoError(t, VerifyOTP(db, email, currentCode(t, db, email)))

	// request OTP baru membatalkan verifikasi lama
	require.NoError(t, IssueOTP(db, email))
	verified, err := IsEmailVerified(db, email)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestClearOTPRemovesRecord(t *testing.T) {
	db := newTestDB(t)
	email := "siswa@example.com"
	require.NoError(t, IssueOTP(db, email))

	ClearOTP(db, email)

	var count int64
	require.NoError(t, db.Model(&model.OTP{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
