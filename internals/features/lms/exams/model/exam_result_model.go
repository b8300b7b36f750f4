package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamResult satu baris per attempt; maksimal 3 attempt per (student, exam).
type ExamResult struct {
	ExamResultID uuid.UUID `gorm:"column:exam_result_id;type:uuid;primaryKey" json:"exam_result_id"`

	ExamResultStudentID uuid.UUID `gorm:"column:exam_result_student_id;type:uuid;not null;index:idx_exam_result_student_exam" json:"exam_result_student_id"`
	ExamResultExamID    uuid.UUID `gorm:"column:exam_result_exam_id;type:uuid;not null;index:idx_exam_result_student_exam" json:"exam_result_exam_id"`
	ExamResultCourseID  uuid.UUID `gorm:"column:exam_result_course_id;type:uuid;not null;index" json:"exam_result_course_id"`

	ExamResultScore               float64 `gorm:"column:exam_result_score;not null" json:"exam_result_score"`
	ExamResultTotalMarks          float64 `gorm:"column:exam_result_total_marks;not null" json:"exam_result_total_marks"`
	ExamResultCertificateEligible bool    `gorm:"column:exam_result_certificate_eligible;not null;default:false" json:"exam_result_certificate_eligible"`

	// Diisi belakangan saat artefak sertifikat selesai diupload
	ExamResultCertificateURL *string `gorm:"column:exam_result_certificate_url;type:text" json:"exam_result_certificate_url,omitempty"`

	ExamResultSubmittedAt time.Time `gorm:"column:exam_result_submitted_at;autoCreateTime" json:"exam_result_submitted_at"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

func (m *ExamResult) BeforeCreate(tx *gorm.DB) error {
	if m.ExamResultID == uuid.Nil {
		m.ExamResultID = uuid.New()
	}
	return nil
}
