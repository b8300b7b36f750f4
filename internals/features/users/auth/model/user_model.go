package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserName     string `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail    string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:text;not null" json:"-"`
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"` // admin | instructor | student

	// Profil tambahan khusus instructor
	UserFatherName    *string `gorm:"column:user_father_name;type:varchar(100)" json:"user_father_name,omitempty"`
	UserQualification *string `gorm:"column:user_qualification;type:varchar(100)" json:"user_qualification,omitempty"`
	UserGender        *string `gorm:"column:user_gender;type:varchar(20)" json:"user_gender,omitempty"`
	UserAddress       *string `gorm:"column:user_address;type:text" json:"user_address,omitempty"`
	UserCity          *string `gorm:"column:user_city;type:varchar(100)" json:"user_city,omitempty"`
	UserState         *string `gorm:"column:user_state;type:varchar(100)" json:"user_state,omitempty"`
	UserCountry       *string `gorm:"column:user_country;type:varchar(100)" json:"user_country,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
