package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Exam struct {
	ExamID uuid.UUID `gorm:"column:exam_id;type:uuid;primaryKey" json:"exam_id"`

	ExamCourseID     uuid.UUID `gorm:"column:exam_course_id;type:uuid;not null;index;uniqueIndex:idx_exam_course_number" json:"exam_course_id"`
	ExamInstructorID uuid.UUID `gorm:"column:exam_instructor_id;type:uuid;not null;index" json:"exam_instructor_id"`

	ExamInstructions string `gorm:"column:exam_instructions;type:text;not null" json:"exam_instructions"`
	ExamTimerMinutes int    `gorm:"column:exam_timer_minutes;not null;check:exam_timer_minutes > 0" json:"exam_timer_minutes"`

	ExamQuestions datatypes.JSON `gorm:"column:exam_questions;not null" json:"exam_questions"`

	// Sertifikat hanya diterbitkan bila flag ini aktif
	ExamIsCertificateEnabled bool `gorm:"column:exam_is_certificate_enabled;not null;default:true" json:"exam_is_certificate_enabled"`

	ExamNumber int `gorm:"column:exam_number;not null;uniqueIndex:idx_exam_course_number" json:"exam_number"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Exam) TableName() string {
	return "exams"
}

func (m *Exam) BeforeCreate(tx *gorm.DB) error {
	if m.ExamID == uuid.Nil {
		m.ExamID = uuid.New()
	}
	return nil
}
