package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTP satu baris per email (upsert saat request ulang), dipakai sekali untuk
// verifikasi signup lalu dihapus.
type OTP struct {
	OTPID uuid.UUID `gorm:"column:otp_id;type:uuid;primaryKey" json:"otp_id"`

	OTPEmail     string    `gorm:"column:otp_email;type:varchar(255);not null;uniqueIndex" json:"otp_email"`
	OTPCode      string    `gorm:"column:otp_code;type:varchar(10);not null" json:"-"`
	OTPVerified  bool      `gorm:"column:otp_verified;not null;default:false" json:"otp_verified"`
	OTPExpiresAt time.Time `gorm:"column:otp_expires_at;not null" json:"otp_expires_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OTP) TableName() string {
	return "otps"
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.OTPID == uuid.Nil {
		o.OTPID = uuid.New()
	}
	return nil
}
