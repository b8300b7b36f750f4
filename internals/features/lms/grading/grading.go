// Package grading berisi mesin penilaian murni untuk assessment & exam:
// mencocokkan jawaban terhadap kunci, menghitung nilai, dan menurunkan
// kelayakan sertifikat. Tidak menyentuh database sama sekali.
package grading

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Option struct {
	OptionID  string `json:"option_id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Options    []Option `json:"options"`
	Marks      float64  `json:"marks"`
}

// Answer satu jawaban student: pilihan option untuk satu soal.
type Answer struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
}

// TotalMode menentukan basis total nilai.
type TotalMode int

const (
	// TotalAnswered (legacy): total hanya dari soal yang dijawab.
	TotalAnswered TotalMode = iota
	// TotalAll (strict): total dari seluruh soal di bank.
	TotalAll
)

func ModeFromString(s string) TotalMode {
	if s == "all" {
		return TotalAll
	}
	return TotalAnswered
}

// PassPercentage ambang kelayakan sertifikat.
const PassPercentage = 60.0

type Result struct {
	ObtainedMarks float64
	TotalMarks    float64
	Percentage    float64
}

// Grade menilai jawaban terhadap bank soal.
//
// Aturan (kompatibel dengan API lama):
//   - jawaban dengan question id yang tidak dikenal di-skip tanpa error;
//   - nilai penuh diberikan bila option yang dipilih == option kunci
//     (option pertama dengan is_correct = true);
//   - mode TotalAnswered: marks soal masuk total hanya bila soal tersebut
//     direferensikan oleh jawaban; mode TotalAll: seluruh soal masuk total;
//   - total 0 → percentage 0.
func Grade(questions []Question, answers []Answer, mode TotalMode) Result {
	byID := make(map[string]*Question, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	var res Result
	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}
		if correct, ok := correctOption(q); ok && correct.OptionID == ans.OptionID {
			res.ObtainedMarks += q.Marks
		}
		if mode == TotalAnswered {
			res.TotalMarks += q.Marks
		}
	}

	if mode == TotalAll {
		for _, q := range questions {
			res.TotalMarks += q.Marks
		}
	}

	if res.TotalMarks > 0 {
		res.Percentage = res.ObtainedMarks / res.TotalMarks * 100
	}
	return res
}

// CertificateEligible: lulus ambang DAN fitur sertifikat aktif (untuk
// assessment, certificateEnabled selalu true).
func CertificateEligible(percentage float64, certificateEnabled bool) bool {
	return percentage >= PassPercentage && certificateEnabled
}

func correctOption(q *Question) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i], true
		}
	}
	return nil, false
}

/* ===================== (de)serialisasi dokumen soal ===================== */

// QuestionsToJSON menyimpan bank soal sebagai dokumen JSON embedded di
// baris assessment/exam.
func QuestionsToJSON(questions []Question) (datatypes.JSON, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func QuestionsFromJSON(doc datatypes.JSON) ([]Question, error) {
	var questions []Question
	if len(doc) == 0 {
		return questions, nil
	}
	if err := json.Unmarshal(doc, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
