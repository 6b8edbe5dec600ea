package formats

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/estudia-app/estudia-backend/internal/quiz"
)

// Metadata dialect: {metadata:{title, sj, tp, total}, q:[{x, dif, sb, o:[{t, c, r}]}]}.
// Field names are abbreviated in the source to keep generated payloads small.
type metadataPayload struct {
	Metadata metadataHeader     `json:"metadata"`
	Q        []metadataQuestion `json:"q"`
}

type metadataHeader struct {
	Title string          `json:"title"`
	Sj    string          `json:"sj"` // subject label
	Tp    string          `json:"tp"` // topic label
	Total json.RawMessage `json:"total"`
}

type metadataQuestion struct {
	X   string           `json:"x"`   // statement
	Dif int              `json:"dif"` // 1=fácil 2=moderado 3=difícil
	Sb  string           `json:"sb"`  // sub-topic label
	O   []metadataOption `json:"o"`
}

type metadataOption struct {
	T string  `json:"t"`
	C bool    `json:"c"`
	R *string `json:"r"`
}

var difficultyByCode = map[int]string{
	1: quiz.DifficultyEasy,
	2: quiz.DifficultyMedium,
	3: quiz.DifficultyHard,
}

func normalizeMetadata(raw json.RawMessage) (quiz.Quiz, error) {
	var p metadataPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return quiz.Quiz{}, err
	}

	out := quiz.Quiz{
		Title:       p.Metadata.Title,
		Description: fmt.Sprintf("Tema: %s (%s preguntas)", p.Metadata.Tp, rawScalar(p.Metadata.Total)),
	}

	for _, q := range p.Q {
		opts := make([]quiz.Option, 0, len(q.O))
		for idx, o := range q.O {
			if o.T == "" {
				continue
			}
			opts = append(opts, quiz.Option{
				ID:        strconv.Itoa(idx),
				Text:      o.T,
				IsCorrect: o.C,
				Rationale: o.R,
			})
		}
		difficulty, ok := difficultyByCode[q.Dif]
		if !ok {
			difficulty = quiz.DifficultyMedium
		}
		tags := make([]string, 0, 3)
		for _, t := range []string{p.Metadata.Sj, p.Metadata.Tp, q.Sb} {
			if t != "" {
				tags = append(tags, t)
			}
		}
		out.Questions = append(out.Questions, quiz.Question{
			Question:      q.X,
			Options:       opts,
			CorrectAnswer: quiz.FirstCorrect(opts),
			Type:          quiz.TypeMultipleChoice,
			Difficulty:    difficulty,
			BloomLevel:    quiz.DefaultBloomLevel,
			Tags:          tags,
			Hint:          "",
		})
	}
	return out, nil
}

// rawScalar renders a raw JSON scalar (number or string) without quotes, so
// the synthesized description reads the same for "total": 10 and "total": "10".
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
