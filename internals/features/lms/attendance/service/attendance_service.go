package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/lms/attendance/model"
)

var (
	ErrCourseNotFound      = errors.New("course tidak ditemukan")
	ErrNotCourseInstructor = errors.New("bukan instructor course ini")
	ErrInvalidStatus       = errors.New("status absensi tidak valid")
	ErrNoRecords           = errors.New("belum ada record absensi")
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

type RosterEntryInput struct {
	StudentID uuid.UUID
	Status    string
}

func courseInstructorID(db *gorm.DB, courseID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		CourseInstructorID uuid.UUID `gorm:"column:course_instructor_id"`
	}
	err := db.Table("courses").
		Select("course_instructor_id").
		Where("course_id = ? AND deleted_at IS NULL", courseID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrCourseNotFound
		}
		return uuid.Nil, err
	}
	return row.CourseInstructorID, nil
}

// MarkSession menyimpan satu sesi roll-call baru. Status dinormalisasi
// ke lowercase; nilai di luar present/absent ditolak.
func MarkSession(db *gorm.DB, courseID, instructorID uuid.UUID, roster []RosterEntryInput) (*model.AttendanceSession, error) {
	ownerID, err := courseInstructorID(db, courseID)
	if err != nil {
		return nil, err
	}
	if ownerID != instructorID {
		return nil, ErrNotCourseInstructor
	}

	entries := make([]model.RosterEntry, 0, len(roster))
	for _, r := range roster {
		status := strings.ToLower(strings.TrimSpace(r.Status))
		if status != StatusPresent && status != StatusAbsent {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
		}
		entries = append(entries, model.RosterEntry{StudentID: r.StudentID, Status: status})
	}

	doc, err := model.RosterToJSON(entries)
	if err != nil {
		return nil, err
	}

	session := model.AttendanceSession{
		AttendanceCourseID:     courseID,
		AttendanceInstructorID: instructorID,
		AttendanceRoster:       doc,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

type Recap struct {
	Percentage      float64     `json:"percentage"`
	TotalSessions   int         `json:"total_sessions"`
	PresentSessions int         `json:"present_sessions"`
	AbsentDates     []time.Time `json:"absent_dates"`
}

// PercentageFor — penyebut = sesi yang MENYEBUT student tersebut (bukan
// semua sesi course); pembilang = sesi dengan status present. Nol sesi
// yang menyebut student dilaporkan sebagai ErrNoRecords.
func PercentageFor(db *gorm.DB, courseID, studentID uuid.UUID) (*Recap, error) {
	var sessions []model.AttendanceSession
	if err := db.Where("attendance_course_id = ?", courseID).
		Order("attendance_date ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	recap := Recap{AbsentDates: []time.Time{}}
	for _, s := range sessions {
		entries, err := model.RosterFromJSON(s.AttendanceRoster)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.StudentID != studentID {
				continue
			}
			recap.TotalSessions++
			if e.Status == StatusPresent {
				recap.PresentSessions++
			} else {
				recap.AbsentDates = append(recap.AbsentDates, s.AttendanceDate)
			}
			break
		}
	}

	if recap.TotalSessions == 0 {
		return nil, ErrNoRecords
	}
	pct := float64(recap.PresentSessions) / float64(recap.TotalSessions) * 100
	recap.Percentage = math.Round(pct*100) / 100
	return &recap, nil
}
