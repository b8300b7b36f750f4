package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentResult satu baris per (student, assessment) — assessment hanya
// boleh disubmit sekali; unique index jadi backstop saat ada retry ganda.
type AssessmentResult struct {
	AssessmentResultID uuid.UUID `gorm:"column:assessment_result_id;type:uuid;primaryKey" json:"assessment_result_id"`

	AssessmentResultStudentID    uuid.UUID `gorm:"column:assessment_result_student_id;type:uuid;not null;uniqueIndex:idx_assessment_result_once;index" json:"assessment_result_student_id"`
	AssessmentResultAssessmentID uuid.UUID `gorm:"column:assessment_result_assessment_id;type:uuid;not null;uniqueIndex:idx_assessment_result_once" json:"assessment_result_assessment_id"`
	AssessmentResultCourseID     uuid.UUID `gorm:"column:assessment_result_course_id;type:uuid;not null;index" json:"assessment_result_course_id"`

	AssessmentResultScore               float64 `gorm:"column:assessment_result_score;not null" json:"assessment_result_score"`
	AssessmentResultTotalMarks          float64 `gorm:"column:assessment_result_total_marks;not null" json:"assessment_result_total_marks"`
	AssessmentResultCertificateEligible bool    `gorm:"column:assessment_result_certificate_eligible;not null;default:false" json:"assessment_result_certificate_eligible"`

	AssessmentResultSubmittedAt time.Time `gorm:"column:assessment_result_submitted_at;autoCreateTime" json:"assessment_result_submitted_at"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

func (m *AssessmentResult) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentResultID == uuid.Nil {
		m.AssessmentResultID = uuid.New()
	}
	return nil
}
