package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Assessment struct {
	AssessmentID uuid.UUID `gorm:"column:assessment_id;type:uuid;primaryKey" json:"assessment_id"`

	AssessmentCourseID     uuid.UUID `gorm:"column:assessment_course_id;type:uuid;not null;index;uniqueIndex:idx_assessment_course_number" json:"assessment_course_id"`
	AssessmentInstructorID uuid.UUID `gorm:"column:assessment_instructor_id;type:uuid;not null;index" json:"assessment_instructor_id"`

	AssessmentInstructions string `gorm:"column:assessment_instructions;type:text;not null" json:"assessment_instructions"`
	AssessmentTimerMinutes int    `gorm:"column:assessment_timer_minutes;not null;check:assessment_timer_minutes > 0" json:"assessment_timer_minutes"`

	// Bank soal embedded sebagai dokumen JSON ([]grading.Question)
	AssessmentQuestions datatypes.JSON `gorm:"column:assessment_questions;not null" json:"assessment_questions"`

	AssessmentIsCertificateEnabled bool `gorm:"column:assessment_is_certificate_enabled;not null;default:true" json:"assessment_is_certificate_enabled"`

	// Nomor urut per course; unique index (course, number) menutup race
	// count-then-insert dari desain lama.
	AssessmentNumber int `gorm:"column:assessment_number;not null;uniqueIndex:idx_assessment_course_number" json:"assessment_number"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (m *Assessment) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentID == uuid.Nil {
		m.AssessmentID = uuid.New()
	}
	return nil
}
