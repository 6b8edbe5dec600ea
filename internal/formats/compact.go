package formats

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/estudia-app/estudia-backend/internal/quiz"
)

// CompactExpander turns the longitudinal compact payload {t, q:[...]} into a
// title/description/questions triple. The production app ships its own
// expander; LongitudinalExpander below covers the documented shape.
type CompactExpander interface {
	Expand(raw json.RawMessage) (quiz.Quiz, error)
}

// ExpandError surfaces a compact-expander failure with its underlying message.
type ExpandError struct {
	Err error
}

func (e *ExpandError) Error() string {
	return "Error al expandir formato compacto: " + e.Err.Error()
}

func (e *ExpandError) Unwrap() error { return e.Err }

func normalizeCompact(raw json.RawMessage, exp CompactExpander) (quiz.Quiz, error) {
	if exp == nil {
		exp = LongitudinalExpander{}
	}
	expanded, err := exp.Expand(raw)
	if err != nil {
		return quiz.Quiz{}, &ExpandError{Err: err}
	}
	for i := range expanded.Questions {
		expanded.Questions[i].ApplyDefaults()
	}
	return expanded, nil
}

// LongitudinalExpander expands the documented compact shape:
//
//	{"t": "Título", "d": "...", "q": [{"x": "...", "dif": 1-3, "qt": "mcq",
//	  "id": "Q001", "o": [{"t": "...", "c": true, "r": "..."}]}]}
//
// Option text also accepts the long key "text", which some generators emit.
type LongitudinalExpander struct{}

type compactPayload struct {
	T string            `json:"t"`
	D string            `json:"d"`
	Q []compactQuestion `json:"q"`
}

type compactQuestion struct {
	X    string          `json:"x"`
	Dif  int             `json:"dif"`
	QT   string          `json:"qt"`
	ID   string          `json:"id"`
	Hint string          `json:"h"`
	O    []compactOption `json:"o"`
}

type compactOption struct {
	T    string  `json:"t"`
	Text string  `json:"text"`
	C    bool    `json:"c"`
	R    *string `json:"r"`
}

func (LongitudinalExpander) Expand(raw json.RawMessage) (quiz.Quiz, error) {
	var p compactPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return quiz.Quiz{}, err
	}
	if len(p.Q) == 0 {
		return quiz.Quiz{}, errors.New("el formato compacto no contiene preguntas en 'q'")
	}

	out := quiz.Quiz{Title: p.T, Description: p.D}
	for _, q := range p.Q {
		if q.X == "" {
			return quiz.Quiz{}, errors.New("pregunta compacta sin enunciado 'x'")
		}
		opts := make([]quiz.Option, 0, len(q.O))
		for idx, o := range q.O {
			text := o.T
			if text == "" {
				text = o.Text
			}
			opts = append(opts, quiz.Option{
				ID:        strconv.Itoa(idx),
				Text:      text,
				IsCorrect: o.C,
				Rationale: o.R,
			})
		}
		qType := quiz.TypeMultipleChoice
		if q.QT == "img" || q.QT == "image" {
			qType = quiz.TypeImage
		}
		difficulty, ok := difficultyByCode[q.Dif]
		if !ok {
			difficulty = quiz.DifficultyMedium
		}
		out.Questions = append(out.Questions, quiz.Question{
			Question:      q.X,
			Options:       opts,
			CorrectAnswer: quiz.FirstCorrect(opts),
			Type:          qType,
			Difficulty:    difficulty,
			Hint:          q.Hint,
		})
	}
	return out, nil
}
