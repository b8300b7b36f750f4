package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message pengumuman satu arah dari instructor ke seluruh student
// sebuah course.
type Message struct {
	MessageID uuid.UUID `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`

	MessageCourseID     uuid.UUID `gorm:"column:message_course_id;type:uuid;not null;index" json:"message_course_id"`
	MessageInstructorID uuid.UUID `gorm:"column:message_instructor_id;type:uuid;not null;index" json:"message_instructor_id"`

	MessageContent string `gorm:"column:message_content;type:text;not null" json:"message_content"`

	MessageSentAt time.Time `gorm:"column:message_sent_at;autoCreateTime" json:"message_sent_at"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
