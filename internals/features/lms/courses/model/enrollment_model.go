package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseEnrollment = membership student ↔ course. Unique index komposit
// menjamin satu student hanya ter-enroll sekali per course, termasuk di
// bawah request konkuren (backstop dari cek AlreadyEnrolled di service).
type CourseEnrollment struct {
	CourseEnrollmentID uuid.UUID `gorm:"column:course_enrollment_id;type:uuid;primaryKey" json:"course_enrollment_id"`

	CourseEnrollmentStudentID uuid.UUID `gorm:"column:course_enrollment_student_id;type:uuid;not null;uniqueIndex:idx_enroll_student_course;index" json:"course_enrollment_student_id"`
	CourseEnrollmentCourseID  uuid.UUID `gorm:"column:course_enrollment_course_id;type:uuid;not null;uniqueIndex:idx_enroll_student_course;index" json:"course_enrollment_course_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

func (m *CourseEnrollment) BeforeCreate(tx *gorm.DB) error {
	if m.CourseEnrollmentID == uuid.Nil {
		m.CourseEnrollmentID = uuid.New()
	}
	return nil
}

// IsEnrolled cek membership (dipakai lintas fitur: exams, assessments, messages).
func IsEnrolled(db *gorm.DB, studentID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&CourseEnrollment{}).
		Where("course_enrollment_student_id = ? AND course_enrollment_course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

// EnrolledCourseIDs daftar course id milik satu student.
func EnrolledCourseIDs(db *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&CourseEnrollment{}).
		Where("course_enrollment_student_id = ?", studentID).
		Pluck("course_enrollment_course_id", &ids).Error
	return ids, err
}
