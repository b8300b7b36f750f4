package dto

type SendMessageRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Content  string `json:"content" validate:"required"`
}

// MessageView hasil join dengan nama course & instructor, waktu sudah
// diformat ke zona Asia/Jakarta.
type MessageView struct {
	MessageID      string `json:"message_id"`
	Text           string `json:"text"`
	CourseName     string `json:"course_name"`
	InstructorName string `json:"instructor_name,omitempty"`
	SentAt         string `json:"sent_at"`
}
