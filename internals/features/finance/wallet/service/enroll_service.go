package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	courseModel "kursusku_backend/internals/features/lms/courses/model"
)

var (
	ErrCourseNotFound  = errors.New("course tidak ditemukan")
	ErrAlreadyEnrolled = errors.New("sudah ter-enroll di course ini")
	ErrNoPlatformAdmin = errors.New("akun admin platform tidak ditemukan")
)

type EnrollResult struct {
	CourseID   uuid.UUID
	OfferPrice int64
	NewBalance int64
}

// Enroll "pay-and-enroll" atomik: debit student, credit wallet admin
// platform, lalu tulis membership — ketiganya dalam satu transaksi,
// gagal di tengah berarti rollback total. Urutan precondition: course
// ada, belum ter-enroll, saldo cukup.
func Enroll(db *gorm.DB, studentID, courseID uuid.UUID) (*EnrollResult, error) {
	var out EnrollResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var course struct {
			CourseID         uuid.UUID `gorm:"column:course_id"`
			CourseOfferPrice int64     `gorm:"column:course_offer_price"`
		}
		err := tx.Table("courses").
			Select("course_id, course_offer_price").
			Where("course_id = ? AND deleted_at IS NULL", courseID).
			Take(&course).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var enrolled int64
		if err := tx.Model(&courseModel.CourseEnrollment{}).
			Where("course_enrollment_student_id = ? AND course_enrollment_course_id = ?", studentID, courseID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled > 0 {
			return ErrAlreadyEnrolled
		}

		var admin struct {
			UserID uuid.UUID `gorm:"column:user_id"`
		}
		err = tx.Table("users").
			Select("user_id").
			Where("user_role = ?", constants.RoleAdmin).
			Order("created_at ASC").
			Take(&admin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPlatformAdmin
			}
			return err
		}

		// Course gratis (offer price 0) tidak menyentuh ledger
		if course.CourseOfferPrice > 0 {
			if err := debit(tx, studentID, course.CourseOfferPrice); err != nil {
				return err
			}
			if err := credit(tx, admin.UserID, course.CourseOfferPrice); err != nil {
				return err
			}
		}

		enrollment := courseModel.CourseEnrollment{
			CourseEnrollmentStudentID: studentID,
			CourseEnrollmentCourseID:  courseID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			// Unique index jadi backstop kalau dua enroll lolos cek di atas
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		balance, err := Balance(tx, studentID)
		if err != nil && !errors.Is(err, ErrWalletNotFound) {
			return err
		}
		out = EnrollResult{
			CourseID:   courseID,
			OfferPrice: course.CourseOfferPrice,
			NewBalance: balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
