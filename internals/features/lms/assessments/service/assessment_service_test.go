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

	"kursusku_backend/internals/features/lms/assessments/model"
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
		&model.Assessment{},
		&model.AssessmentResult{},
		&courseStub{},
	))
	return db
}

func questionBank() []grading.Question {
	return []grading.Question{
		{
			QuestionID: "q1",
			Text:       "Ibukota Indonesia?",
			Marks:      5,
			Options: []grading.Option{
				{OptionID: "q1a", Text: "Jakarta", IsCorrect: true},
				{OptionID: "q1b", Text: "Bandung"},
			},
		},
		{
			QuestionID: "q2",
			Text:       "2 + 2?",
			Marks:      10,
			Options: []grading.Option{
				{OptionID: "q2a", Text: "3"},
				{OptionID: "q2b", Text: "4", IsCorrect: true},
			},
		},
	}
}

func seedAssessment(t *testing.T, db *gorm.DB) (instructorID, courseID uuid.UUID, assessment *model.Assessment) {
	t.Helper()
	instructorID = uuid.New()
	courseID = uuid.New()
	require.NoError(t, db.Create(&courseStub{CourseID: courseID, CourseInstructorID: instructorID}).Error)

	assessment, err := CreateAssessment(db, CreateInput{
		CourseID:           courseID,
		InstructorID:       instructorID,
		Instructions:       "Kerjakan dengan jujur",
		TimerMinutes:       30,
		Questions:          questionBank(),
		CertificateEnabled: true,
	})
	require.NoError(t, err)
	return instructorID, courseID, assessment
}

func TestCreateAssessmentAssignsSequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	instructorID, courseID, first := seedAssessment(t, db)

	second, err := CreateAssessment(db, CreateInput{
		CourseID:           courseID,
		InstructorID:       instructorID,
		Instructions:       "Bagian kedua",
		TimerMinutes:       20,
		Questions:          questionBank(),
		CertificateEnabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, first.AssessmentNumber)
	assert.Equal(t, 2, second.AssessmentNumber)
}

func TestCreateAssessmentRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	_, courseID, _ := seedAssessment(t, db)

	_, err := CreateAssessment(db, CreateInput{
		CourseID:     courseID,
		InstructorID: uuid.New(),
		Instructions: "bukan punya saya",
		TimerMinutes: 10,
		Questions:    questionBank(),
	})
	assert.ErrorIs(t, err, ErrNotCourseInstructor)
}

func TestCreateAssessmentCourseNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateAssessment(db, CreateInput{
		CourseID:     uuid.New(),
		InstructorID: uuid.New(),
		Instructions: "x",
		TimerMinutes: 10,
		Questions:    questionBank(),
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestSubmitAssessmentGradesAndPersists(t *testing.T) {
	db := newTestDB(t)
	_, courseID, assessment := seedAssessment(t, db)
	studentID := uuid.New()

	// q1 benar, q2 salah → 5/15
	res, err := SubmitAssessment(db, studentID, assessment.AssessmentID, []grading.Answer{
		{QuestionID: "q1", OptionID: "q1a"},
		{QuestionID: "q2", OptionID: "q2a"},
	}, grading.TotalAnswered)
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Grading.ObtainedMarks)
	assert.Equal(t, 15.0, res.Grading.TotalMarks)
	assert.InDelta(t, 33.33, res.Grading.Percentage, 0.01)
	assert.Equal(t, courseID, res.Result.AssessmentResultCourseID)
	assert.False(t, res.Result.AssessmentResultCertificateEligible)

	var count int64
	require.NoError(t, db.Model(&model.AssessmentResult{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitAssessmentRejectsSecondSubmission(t *testing.T) {
	db := newTestDB(t)
	_, _, assessment := seedAssessment(t, db)
	studentID := uuid.New()

	answers := []grading.Answer{{QuestionID: "q1", OptionID: "q1a"}}
	_, err := SubmitAssessment(db, studentID, assessment.AssessmentID, answers, grading.TotalAnswered)
	require.NoError(t, err)

	_, err = SubmitAssessment(db, studentID, assessment.AssessmentID, answers, grading.TotalAnswered)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmitAssessmentEmptyAnswers(t *testing.T) {
	db := newTestDB(t)
	_, _, assessment := seedAssessment(t, db)

	_, err := SubmitAssessment(db, uuid.New(), assessment.AssessmentID, nil, grading.TotalAnswered)
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestSubmitAssessmentNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := SubmitAssessment(db, uuid.New(), uuid.New(),
		[]grading.Answer{{QuestionID: "q1", OptionID: "q1a"}}, grading.TotalAnswered)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestSubmitAssessmentTotalAllMode(t *testing.T) {
	db := newTestDB(t)
	_, _, assessment := seedAssessment(t, db)

	// hanya q1 dijawab; mode "all" tetap menghitung seluruh bank soal
	res, err := SubmitAssessment(db, uuid.New(), assessment.AssessmentID, []grading.Answer{
		{QuestionID: "q1", OptionID: "q1a"},
	}, grading.TotalAll)
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Grading.ObtainedMarks)
	assert.Equal(t, 15.0, res.Grading.TotalMarks)
}
