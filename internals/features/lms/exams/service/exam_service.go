package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/lms/exams/model"
	"kursusku_backend/internals/features/lms/grading"
)

var (
	ErrCourseNotFound      = errors.New("course tidak ditemukan")
	ErrNotCourseInstructor = errors.New("bukan instructor course ini")
	ErrExamNotFound        = errors.New("exam tidak ditemukan")
	ErrEmptySubmission     = errors.New("format jawaban tidak valid")
	ErrAttemptsExhausted   = errors.New("batas attempt sudah habis")
)

const (
	// MaxAttempts batas attempt per (student, exam)
	MaxAttempts = 3

	seqMaxRetry = 3
)

type CreateInput struct {
	CourseID           uuid.UUID
	InstructorID       uuid.UUID
	Instructions       string
	TimerMinutes       int
	Questions          []grading.Question
	CertificateEnabled bool
}

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

// CreateExam — ownership check + nomor urut per-course (max+1 dalam
// transaksi, unique index (course, number) + retry).
func CreateExam(db *gorm.DB, in CreateInput) (*model.Exam, error) {
	doc, err := grading.QuestionsToJSON(in.Questions)
	if err != nil {
		return nil, err
	}

	var created *model.Exam
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
			if err := tx.Model(&model.Exam{}).
				Where("exam_course_id = ?", in.CourseID).
				Select("COALESCE(MAX(exam_number), 0)").
				Scan(&maxNumber).Error; err != nil {
				return err
			}

			e := model.Exam{
				ExamCourseID:             in.CourseID,
				ExamInstructorID:         in.InstructorID,
				ExamInstructions:         in.Instructions,
				ExamTimerMinutes:         in.TimerMinutes,
				ExamQuestions:            doc,
				ExamIsCertificateEnabled: in.CertificateEnabled,
				ExamNumber:               maxNumber + 1,
			}
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
			created = &e
			return nil
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

type SubmitResult struct {
	Result       *model.ExamResult
	Grading      grading.Result
	AttemptsUsed int
}

// SubmitExam menilai jawaban dan menyimpan satu ExamResult per attempt.
// Attempt ke-4 dan seterusnya ditolak; hitungan attempt dicek di dalam
// transaksi yang sama dengan insert-nya.
func SubmitExam(db *gorm.DB, studentID, examID uuid.UUID, answers []grading.Answer, mode grading.TotalMode) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, ErrEmptySubmission
	}

	var out SubmitResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var exam model.Exam
		if err := tx.First(&exam, "exam_id = ?", examID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExamNotFound
			}
			return err
		}

		var prior int64
		if err := tx.Model(&model.ExamResult{}).
			Where("exam_result_student_id = ? AND exam_result_exam_id = ?", studentID, examID).
			Count(&prior).Error; err != nil {
			return err
		}
		if prior >= MaxAttempts {
			return ErrAttemptsExhausted
		}

		questions, err := grading.QuestionsFromJSON(exam.ExamQuestions)
		if err != nil {
			return err
		}
		out.Grading = grading.Grade(questions, answers, mode)
		out.AttemptsUsed = int(prior) + 1

		result := model.ExamResult{
			ExamResultStudentID:           studentID,
			ExamResultExamID:              examID,
			ExamResultCourseID:            exam.ExamCourseID,
			ExamResultScore:               out.Grading.ObtainedMarks,
			ExamResultTotalMarks:          out.Grading.TotalMarks,
			ExamResultCertificateEligible: grading.CertificateEligible(out.Grading.Percentage, exam.ExamIsCertificateEnabled),
		}
		if err := tx.Create(&result).Error; err != nil {
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
