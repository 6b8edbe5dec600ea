package formats

import (
	"encoding/json"
	"strconv"

	"github.com/estudia-app/estudia-backend/internal/quiz"
)

// genericQuestion is the question shape shared by the direct-array and
// quiz-wrapper dialects: prose question plus answerOptions.
type genericQuestion struct {
	Question      string          `json:"question"`
	AnswerOptions []genericOption `json:"answerOptions"`
	Hint          string          `json:"hint"`
}

type genericOption struct {
	Text       string  `json:"text"`
	AnswerText string  `json:"answerText"`
	IsCorrect  bool    `json:"isCorrect"`
	Rationale  *string `json:"rationale"`
}

type quizWrapperPayload struct {
	Title string            `json:"title"`
	Quiz  []genericQuestion `json:"quiz"`
}

func normalizeArray(raw json.RawMessage) (quiz.Quiz, error) {
	var qs []genericQuestion
	if err := json.Unmarshal(raw, &qs); err != nil {
		return quiz.Quiz{}, err
	}
	return quiz.Quiz{Questions: mapGenericQuestions(qs)}, nil
}

func normalizeQuizWrapper(raw json.RawMessage) (quiz.Quiz, error) {
	var p quizWrapperPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return quiz.Quiz{}, err
	}
	return quiz.Quiz{Title: p.Title, Questions: mapGenericQuestions(p.Quiz)}, nil
}

func mapGenericQuestions(qs []genericQuestion) []quiz.Question {
	out := make([]quiz.Question, 0, len(qs))
	for _, q := range qs {
		opts := make([]quiz.Option, 0, len(q.AnswerOptions))
		for idx, o := range q.AnswerOptions {
			text := o.Text
			if text == "" {
				text = o.AnswerText
			}
			opts = append(opts, quiz.Option{
				ID:        strconv.Itoa(idx),
				Text:      text,
				IsCorrect: o.IsCorrect,
				Rationale: o.Rationale,
			})
		}
		cq := quiz.Question{
			Question:      q.Question,
			Options:       opts,
			CorrectAnswer: quiz.FirstCorrect(opts),
			Hint:          q.Hint,
		}
		cq.ApplyDefaults()
		out = append(out, cq)
	}
	return out
}
