package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kursusku_backend/internals/features/lms/exams/model"
	"kursusku_backend/internals/features/lms/grading"
)

// courseStub — kolom courses secukupnya; model Course asli memakai
// text[] (pq.StringArray) yang tidak bisa dimigrasi sqlite.
type courseStub struct {
	CourseID           uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey"`
	CourseInstructorID uuid.UUID `gorm:"column:course_instructor_id;type:uuid"`
	DeletedAt          gorm.DeletedAt
}

func (courseStub) TableName() string { return "courses" }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Exam{},
		&model.ExamResult{},
		&courseStub{},
	))
	return db
}

// bank soal skenario standar: q1 5 marks (kunci A), q2 10 marks (kunci B)
func questionBank() []grading.Question {
	return []grading.Question{
		{
			QuestionID: "q1",
			Text:       "Pertanyaan pertama",
			Marks:      5,
			Options: []grading.Option{
				{OptionID: "q1a", Text: "A", IsCorrect: true},
				{OptionID: "q1b", Text: "B"},
			},
		},
		{
			QuestionID: "q2",
			Text:       "Pertanyaan kedua",
			Marks:      10,
			Options: []grading.Option{
				{OptionID: "q2a", Text: "A"},
				{OptionID: "q2b", Text: "B", IsCorrect: true},
			},
		},
	}
}

func seedExam(t *testing.T, db *gorm.DB, certEnabled bool) (courseID uuid.UUID, exam *model.Exam) {
	t.Helper()
	instructorID := uuid.New()
	courseID = uuid.New()
	require.NoError(t, db.Create(&courseStub{CourseID: courseID, CourseInstructorID: instructorID}).Error)

	exam, err := CreateExam(db, CreateInput{
		CourseID:           courseID,
		InstructorID:       instructorID,
		Instructions:       "Ujian akhir",
		TimerMinutes:       60,
		Questions:          questionBank(),
		CertificateEnabled: certEnabled,
	})
	require.NoError(t, err)
	return courseID, exam
}

func TestCreateExamAssignsSequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	courseID, first := seedExam(t, db, true)

	var course courseStub
	require.NoError(t, db.First(&course, "course_id = ?", courseID).Error)

	second, err := CreateExam(db, CreateInput{
		CourseID:           courseID,
		InstructorID:       course.CourseInstructorID,
		Instructions:       "Remedial",
		TimerMinutes:       45,
		Questions:          questionBank(),
		CertificateEnabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ExamNumber)
	assert.Equal(t, 2, second.ExamNumber)
}

func TestCreateExamRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedExam(t, db, true)

	_, err := CreateExam(db, CreateInput{
		CourseID:     courseID,
		InstructorID: uuid.New(),
		Instructions: "bukan punya saya",
		TimerMinutes: 10,
		Questions:    questionBank(),
	})
	assert.ErrorIs(t, err, ErrNotCourseInstructor)
}

func TestSubmitExamPartialScoreNotEligible(t *testing.T) {
	db := newTestDB(t)
	courseID, exam := seedExam(t, db, true)
	studentID := uuid.New()

	// q1 benar (5), q2 salah → 5/15 = 33.33%, tidak eligible
	res, err := SubmitExam(db, studentID, exam.ExamID, []grading.Answer{
		{QuestionID: "q1", OptionID: "q1a"},
		{QuestionID: "q2", OptionID: "q2a"},
	}, grading.TotalAnswered)
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Grading.ObtainedMarks)
	assert.Equal(t, 15.0, res.Grading.TotalMarks)
	assert.InDelta(t, 33.33, res.Grading.Percentage, 0.01)
	assert.Equal(t, 1, res.AttemptsUsed)
	assert.Equal(t, courseID, res.Result.ExamResultCourseID)
	assert.False(t, res.Result.ExamResultCertificateEligible)
}

func TestSubmitExamAttemptCap(t *testing.T) {
	db := newTestDB(t)
	_, exam := seedExam(t, db, true)
	studentID := uuid.New()

	answers := []grading.Answer{{QuestionID: "q1", OptionID: "q1a"}}
	for i := 1; i <= MaxAttempts; i++ {
		res, err := SubmitExam(db, studentID, exam.ExamID, answers, grading.TotalAnswered)
		require.NoError(t, err)
		assert.Equal(t, i, res.AttemptsUsed)
	}

	_, err := SubmitExam(db, studentID, exam.ExamID, answers, grading.TotalAnswered)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)

	// attempt ke-4 tidak menambah baris result
	var count int64
	require.NoError(t, db.Model(&model.ExamResult{}).
		Where("exam_result_student_id = ?", studentID).Count(&count).Error)
	assert.Equal(t, int64(MaxAttempts), count)
}

func TestSubmitExamAttemptCapPerStudent(t *testing.T) {
	db := newTestDB(t)
	_, exam := seedExam(t, db, true)
	exhausted := uuid.New()
	fresh := uuid.New()

	answers := []grading.Answer{{QuestionID: "q1", OptionID: "q1a"}}
	for i := 0; i < MaxAttempts; i++ {
		_, err := SubmitExam(db, exhausted, exam.ExamID, answers, grading.TotalAnswered)
		require.NoError(t, err)
	}

	res, err := SubmitExam(db, fresh, exam.ExamID, answers, grading.TotalAnswered)
	require.NoError(t, err)
	assert.Equal(t, 1, res.AttemptsUsed)
}

func TestSubmitExamCertificateEligibility(t *testing.T) {
	db := newTestDB(t)
	_, exam := seedExam(t, db, true)

	// semua benar → 100% ≥ 60, eligible
	res, err := SubmitExam(db, uuid.New(), exam.ExamID, []grading.Answer{
		{QuestionID: "q1", OptionID: "q1a"},
		{QuestionID: "q2", OptionID: "q2b"},
	}, grading.TotalAnswered)
	require.NoError(t, err)
	assert.True(t, res.Result.ExamResultCertificateEligible)
}

func TestSubmitExamCertificateFlagDisabled(t *testing.T) {
	db := newTestDB(t)
	_, exam := seedExam(t, db, false)

	// nilai sempurna tapi flag sertifikat mati → tidak eligible
	res, err := SubmitExam(db, uuid.New(), exam.ExamID, []grading.Answer{
		{QuestionID: "q1", OptionID: "q1a"},
		{QuestionID: "q2", OptionID: "q2b"},
	}, grading.TotalAnswered)
	require.NoError(t, err)
	assert.False(t, res.Result.ExamResultCertificateEligible)
}

func TestSubmitExamEmptyAnswers(t *testing.T) {
	db := newTestDB(t)
	_, exam := seedExam(t, db, true)

	_, err := SubmitExam(db, uuid.New(), exam.ExamID, nil, grading.TotalAnswered)
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestSubmitExamNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := SubmitExam(db, uuid.New(), uuid.New(),
		[]grading.Answer{{QuestionID: "q1", OptionID: "q1a"}}, grading.TotalAnswered)
	assert.ErrorIs(t, err, ErrExamNotFound)
}
