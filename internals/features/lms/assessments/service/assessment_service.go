package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/lms/assessments/model"
	"kursusku_backend/internals/features/lms/grading"
)

var (
	ErrCourseNotFound      = errors.New("course tidak ditemukan")
	ErrNotCourseInstructor = errors.New("bukan instructor course ini")
	ErrAssessmentNotFound  = errors.New("assessment tidak ditemukan")
	ErrEmptySubmission     = errors.New("format jawaban tidak valid")
	ErrAlreadySubmitted    = errors.New("assessment sudah pernah disubmit")
)

// retry maksimum saat nomor urut bentrok di bawah create konkuren
const seqMaxRetry = 3

type CreateInput struct {
	CourseID           uuid.UUID
	InstructorID       uuid.UUID
	Instructions       string
	TimerMinutes       int
	Questions          []grading.Question
	CertificateEnabled bool
}

// proyeksi ringan baris course (tanpa import model courses — cukup kolom
// yang dibutuhkan, mengikuti idiom Table/Select/Take)
type courseRow struct {
	CourseID           uuid.UUID `gorm:"column:course_id"`
	CourseInstructorID uuid.UUID `gorm:"column:course_instructor_id"`
}

func findCourse(tx *gorm.DB, courseID uuid.UUID) (*courseRow, error) {
	var row courseRow
	err := tx.Table("courses").
		Select("course_id, course_instructor_id").
		Where("course_id = ? AND deleted_at IS NULL", courseID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CreateAssessment memvalidasi ownership lalu menyimpan assessment dengan
// nomor urut per-course. Nomor diambil max+1 di dalam transaksi; unique
// index (course, number) + retry menjaga keunikan di bawah create konkuren.
func CreateAssessment(db *gorm.DB, in CreateInput) (*model.Assessment, error) {
	doc, err := grading.QuestionsToJSON(in.Questions)
	if err != nil {
		return nil, err
	}

	var created *model.Assessment
	for attempt := 0; attempt < seqMaxRetry; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			course, err := findCourse(tx, in.CourseID)
			if err != nil {
				return err
			}
			if course.CourseInstructorID != in.InstructorID {
				return ErrNotCourseInstructor
			}

			var maxNumber int
			if err := tx.Model(&model.Assessment{}).
				Where("assessment_course_id = ?", in.CourseID).
				Select("COALESCE(MAX(assessment_number), 0)").
				Scan(&maxNumber).Error; err != nil {
				return err
			}

			a := model.Assessment{
				AssessmentCourseID:             in.CourseID,
				AssessmentInstructorID:         in.InstructorID,
				AssessmentInstructions:         in.Instructions,
				AssessmentTimerMinutes:         in.TimerMinutes,
				AssessmentQuestions:            doc,
				AssessmentIsCertificateEnabled: in.CertificateEnabled,
				AssessmentNumber:               maxNumber + 1,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
			created = &a
			return nil
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue // nomor keburu dipakai create lain, ulang
		}
		break
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

type SubmitResult struct {
	Result  *model.AssessmentResult
	Grading grading.Result
}

// SubmitAssessment menilai jawaban dan menyimpan tepat satu AssessmentResult.
// Submit kedua untuk pasangan (student, assessment) yang sama ditolak.
func SubmitAssessment(db *gorm.DB, studentID, assessmentID uuid.UUID, answers []grading.Answer, mode grading.TotalMode) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, ErrEmptySubmission
	}

	var out SubmitResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var assessment model.Assessment
		if err := tx.First(&assessment, "assessment_id = ?", assessmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssessmentNotFound
			}
			return err
		}

		var prior int64
		if err := tx.Model(&model.AssessmentResult{}).
			Where("assessment_result_student_id = ? AND assessment_result_assessment_id = ?", studentID, assessmentID).
			Count(&prior).Error; err != nil {
			return err
		}
		if prior > 0 {
			return ErrAlreadySubmitted
		}

		questions, err := grading.QuestionsFromJSON(assessment.AssessmentQuestions)
		if err != nil {
			return err
		}
		out.Grading = grading.Grade(questions, answers, mode)

		result := model.AssessmentResult{
			AssessmentResultStudentID:           studentID,
			AssessmentResultAssessmentID:        assessmentID,
			AssessmentResultCourseID:            assessment.AssessmentCourseID,
			AssessmentResultScore:               out.Grading.ObtainedMarks,
			AssessmentResultTotalMarks:          out.Grading.TotalMarks,
			AssessmentResultCertificateEligible: grading.CertificateEligible(out.Grading.Percentage, true),
		}
		if err := tx.Create(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySubmitted
			}
			return err
		}
		out.Result = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
