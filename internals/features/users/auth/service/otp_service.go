package service

import (
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kursusku_backend/internals/features/users/auth/model"
)

const otpTTL = 5 * time.Minute

// GenerateOTP membuat kode numerik 6 digit.
func GenerateOTP() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := ""
	for _, b := range buf {
		code += fmt.Sprintf("%d", int(b)%10)
	}
	return code, nil
}

// IssueOTP meng-upsert OTP per email dengan expiry 5 menit, lalu memanggil
// hook pengiriman. Pengiriman email sebenarnya di luar scope; hook default
// hanya menulis log.
func IssueOTP(db *gorm.DB, email string) error {
	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	rec := model.OTP{
		OTPEmail:     email,
		OTPCode:      code,
		OTPVerified:  false,
		OTPExpiresAt: time.Now().Add(otpTTL),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "otp_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp_code", "otp_verified", "otp_expires_at", "updated_at"}),
	}).Create(&rec).Error; err != nil {
		return err
	}

	deliverOTP(email, code)
	return nil
}

// VerifyOTP menandai OTP terverifikasi bila kode cocok dan belum expired.
func VerifyOTP(db *gorm.DB, email, code string) error {
	var rec model.OTP
	if err := db.Where("otp_email = ?", email).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrOTPNotFound
		}
		return err
	}
	if rec.OTPCode != code {
		return ErrOTPInvalid
	}
	if time.Now().After(rec.OTPExpiresAt) {
		return ErrOTPExpired
	}
	return db.Model(&model.OTP{}).
		Where("otp_email = ?", email).
		Update("otp_verified", true).Error
}

// IsEmailVerified cek apakah email sudah lolos verifikasi OTP.
func IsEmailVerified(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&model.OTP{}).
		Where("otp_email = ? AND otp_verified = ?", email, true).
		Count(&count).Error
	return count > 0, err
}

// ClearOTP menghapus record OTP setelah signup selesai.
func ClearOTP(db *gorm.DB, email string) {
	if err := db.Where("otp_email = ?", email).Delete(&model.OTP{}).Error; err != nil {
		log.Println("[ERROR] Gagal hapus OTP:", err)
	}
}

func deliverOTP(email, code string) {
	// TODO: sambungkan ke provider email saat kredensial SMTP tersedia
	log.Printf("[INFO] OTP untuk %s: %s (berlaku %s)", email, code, otpTTL)
}

var (
	ErrOTPNotFound = fmt.Errorf("otp tidak ditemukan")
	ErrOTPInvalid  = fmt.Errorf("otp tidak valid")
	ErrOTPExpired  = fmt.Errorf("otp sudah expired")
)
