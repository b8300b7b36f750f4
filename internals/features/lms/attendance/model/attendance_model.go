package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RosterEntry satu baris absensi untuk satu student dalam satu sesi.
type RosterEntry struct {
	StudentID uuid.UUID `json:"student_id"`
	Status    string    `json:"status"` // present | absent
}

// AttendanceSession satu kali roll-call. Tidak ada dedup per tanggal:
// dua kali mark di hari yang sama menghasilkan dua sesi.
type AttendanceSession struct {
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`

	AttendanceCourseID     uuid.UUID `gorm:"column:attendance_course_id;type:uuid;not null;index" json:"attendance_course_id"`
	AttendanceInstructorID uuid.UUID `gorm:"column:attendance_instructor_id;type:uuid;not null;index" json:"attendance_instructor_id"`

	AttendanceRoster datatypes.JSON `gorm:"column:attendance_roster;not null" json:"attendance_roster"`

	AttendanceDate time.Time `gorm:"column:attendance_date;autoCreateTime" json:"attendance_date"`
}

func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

func (m *AttendanceSession) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}

func RosterToJSON(entries []RosterEntry) (datatypes.JSON, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func RosterFromJSON(doc datatypes.JSON) ([]RosterEntry, error) {
	var entries []RosterEntry
	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
