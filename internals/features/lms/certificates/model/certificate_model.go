package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate maksimal satu per (student, exam); re-issue menimpa URL.
type Certificate struct {
	CertificateID uuid.UUID `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`

	CertificateStudentID uuid.UUID `gorm:"column:certificate_student_id;type:uuid;not null;uniqueIndex:idx_certificate_student_exam" json:"certificate_student_id"`
	CertificateExamID    uuid.UUID `gorm:"column:certificate_exam_id;type:uuid;not null;uniqueIndex:idx_certificate_student_exam" json:"certificate_exam_id"`
	CertificateCourseID  uuid.UUID `gorm:"column:certificate_course_id;type:uuid;not null;index" json:"certificate_course_id"`

	CertificateURL string `gorm:"column:certificate_url;type:text;not null" json:"certificate_url"`

	CertificateIssuedAt time.Time `gorm:"column:certificate_issued_at;autoCreateTime" json:"certificate_issued_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (m *Certificate) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}
