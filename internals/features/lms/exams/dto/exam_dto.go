package dto

import (
	"fmt"

	"github.com/google/uuid"

	"kursusku_backend/internals/features/lms/grading"
)

type OptionInput struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text    string        `json:"text" validate:"required"`
	Marks   float64       `json:"marks" validate:"required,gt=0"`
	Options []OptionInput `json:"options" validate:"required,min=2,dive"`
}

type CreateExamRequest struct {
	CourseID             string          `json:"course_id" validate:"required,uuid"`
	Instructions         string          `json:"instructions" validate:"required"`
	Timer                int             `json:"timer" validate:"required,gt=0"`
	Questions            []QuestionInput `json:"questions" validate:"required,min=1,dive"`
	IsCertificateEnabled *bool           `json:"is_certificate_enabled"`
}

func CheckAnswerKeys(questions []QuestionInput) error {
	for i, q := range questions {
		hasCorrect := false
		for _, opt := range q.Options {
			if opt.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return fmt.Errorf("soal ke-%d belum punya option kunci (is_correct)", i+1)
		}
	}
	return nil
}

func ToGrading(questions []QuestionInput) []grading.Question {
	out := make([]grading.Question, 0, len(questions))
	for _, q := range questions {
		gq := grading.Question{
			QuestionID: uuid.NewString(),
			Text:       q.Text,
			Marks:      q.Marks,
		}
		for _, opt := range q.Options {
			gq.Options = append(gq.Options, grading.Option{
				OptionID:  uuid.NewString(),
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		out = append(out, gq)
	}
	return out
}

type AnswerInput struct {
	QuestionID string `json:"question_id" validate:"required"`
	OptionID   string `json:"option_id" validate:"required"`
}

type SubmitExamRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

func ToGradingAnswers(answers []AnswerInput) []grading.Answer {
	out := make([]grading.Answer, 0, len(answers))
	for _, a := range answers {
		out = append(out, grading.Answer{QuestionID: a.QuestionID, OptionID: a.OptionID})
	}
	return out
}

/* ===================== view untuk student ===================== */

type StudentOption struct {
	OptionID string `json:"option_id"`
	Text     string `json:"text"`
}

type StudentQuestion struct {
	QuestionID string          `json:"question_id"`
	Text       string          `json:"text"`
	Marks      float64         `json:"marks"`
	Options    []StudentOption `json:"options"`
}

func ToStudentQuestions(questions []grading.Question) []StudentQuestion {
	out := make([]StudentQuestion, 0, len(questions))
	for _, q := range questions {
		sq := StudentQuestion{QuestionID: q.QuestionID, Text: q.Text, Marks: q.Marks}
		for _, opt := range q.Options {
			sq.Options = append(sq.Options, StudentOption{OptionID: opt.OptionID, Text: opt.Text})
		}
		out = append(out, sq)
	}
	return out
}
