package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Course struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`

	CourseName        string `gorm:"column:course_name;type:varchar(150);not null" json:"course_name"`
	CoursePrice       int    `gorm:"column:course_price;not null;check:course_price >= 0" json:"course_price"`
	CourseOfferPrice  int    `gorm:"column:course_offer_price;not null;check:course_offer_price >= 0" json:"course_offer_price"`
	CourseDescription string `gorm:"column:course_description;type:text;not null" json:"course_description"`

	CourseKeyPoints  pq.StringArray `gorm:"column:course_key_points;type:text[]" json:"course_key_points"`
	CourseHighlights pq.StringArray `gorm:"column:course_highlights;type:text[]" json:"course_highlights"`

	CourseCategory string `gorm:"column:course_category;type:varchar(50);not null" json:"course_category"`

	CourseInstructorID   uuid.UUID `gorm:"column:course_instructor_id;type:uuid;not null;index" json:"course_instructor_id"`
	CourseInstructorName string    `gorm:"column:course_instructor_name;type:varchar(100);not null" json:"course_instructor_name"`

	CourseImageURL string  `gorm:"column:course_image_url;type:text" json:"course_image_url"`
	CourseVideoURL *string `gorm:"column:course_video_url;type:text" json:"course_video_url,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (m *Course) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

// Kategori course yang dikenali (enum di sisi aplikasi).
var CourseCategories = []string{
	"Web Development",
	"App Development",
	"Data Science",
	"Machine Learning",
	"Programming Language",
	"Artificial Intelligence",
}

func IsValidCategory(cat string) bool {
	for _, c := range CourseCategories {
		if c == cat {
			return true
		}
	}
	return false
}
