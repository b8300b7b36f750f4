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

	"kursusku_backend/internals/features/lms/attendance/model"
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
		&model.AttendanceSession{},
		&courseStub{},
	))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB) (courseID, instructorID uuid.UUID) {
	t.Helper()
	courseID = uuid.New()
	instructorID = uuid.New()
	require.NoError(t, db.Create(&courseStub{CourseID: courseID, CourseInstructorID: instructorID}).Error)
	return courseID, instructorID
}

func TestMarkSessionNormalizesStatus(t *testing.T) {
	db := newTestDB(t)
	courseID, instructorID := seedCourse(t, db)
	studentID := uuid.New()

	session, err := MarkSession(db, courseID, instructorID, []RosterEntryInput{
		{StudentID: studentID, Status: "Present"},
		{StudentID: uuid.New(), Status: "ABSENT"},
	})
	require.NoError(t, err)

	entries, err := model.RosterFromJSON(session.AttendanceRoster)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusPresent, entries[0].Status)
	assert.Equal(t, StatusAbsent, entries[1].Status)
}

func TestMarkSessionRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	courseID, instructorID := seedCourse(t, db)

	_, err := MarkSession(db, courseID, instructorID, []RosterEntryInput{
		{StudentID: uuid.New(), Status: "late"},
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMarkSessionRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedCourse(t, db)

	_, err := MarkSession(db, courseID, uuid.New(), []RosterEntryInput{
		{StudentID: uuid.New(), Status: "present"},
	})
	assert.ErrorIs(t, err, ErrNotCourseInstructor)
}

func TestMarkSessionCourseNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := MarkSession(db, uuid.New(), uuid.New(), []RosterEntryInput{
		{StudentID: uuid.New(), Status: "present"},
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestMarkSessionNoDedupPerDay(t *testing.T) {
	db := newTestDB(t)
	courseID, instructorID := seedCourse(t, db)
	roster := []RosterEntryInput{{StudentID: uuid.New(), Status: "present"}}

	_, err := MarkSession(db, courseID, instructorID, roster)
	require.NoError(t, err)
	_, err = MarkSession(db, courseID, instructorID, roster)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AttendanceSession{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestPercentageForThreeOfFourSessions(t *testing.T) {
	db := newTestDB(t)
	courseID, instructorID := seedCourse(t, db)
	studentID := uuid.New()

	statuses := []string{"present", "present", "absent", "present"}
	for _, status := range statuses {
		_, err := MarkSession(db, courseID, instructorID, []RosterEntryInput{
			{StudentID: studentID, Status: status},
		})
		require.NoError(t, err)
	}

	recap, err := PercentageFor(db, courseID, studentID)
	require.NoError(t, err)

	assert.Equal(t, 75.00, recap.Percentage)
	assert.Equal(t, 4, recap.TotalSessions)
	assert.Equal(t, 3, recap.PresentSessions)
	assert.Len(t, recap.AbsentDates, 1)
}

func TestPercentageForCountsOnlySessionsMentioningStudent(t *testing.T) {
	db := newTestDB(t)
	courseID, instructorID := seedCourse(t, db)
	studentID := uuid.New()
	other := uuid.New()

	// sesi pertama hanya menyebut student lain
	_, err := MarkSession(db, courseID, instructorID, []RosterEntryInput{
		{StudentID: other, Status: "present"},
	})
	require.NoError(t, err)
	_, err = MarkSession(db, courseID, instructorID, []RosterEntryInput{
		{StudentID: studentID, Status: "present"},
		{StudentID: other, Status: "absent"},
	})
	require.NoError(t, err)

	recap, err := PercentageFor(db, courseID, studentID)
	require.NoError(t, err)
	assert.Equal(t, 1, recap.TotalSessions)
	assert.Equal(t, 100.00, recap.Percentage)
}

func TestPercentageForNoRecords(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedCourse(t, db)

	_, err := PercentageFor(db, courseID, uuid.New())
	assert.ErrorIs(t, err, ErrNoRecords)
}
