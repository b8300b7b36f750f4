package dto

// Status divalidasi di service setelah dinormalisasi ke lowercase,
// supaya "Present"/"PRESENT" tetap diterima.
type RosterInput struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required"`
}

type MarkAttendanceRequest struct {
	CourseID string        `json:"course_id" validate:"required,uuid"`
	Roster   []RosterInput `json:"roster" validate:"required,min=1,dive"`
}
