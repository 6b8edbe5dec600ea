package formats

import (
	"encoding/json"

	"github.com/estudia-app/estudia-backend/internal/quiz"
)

// Standard dialect: the payload already matches the canonical quiz shape.
// Questions pass through untouched apart from defaulted optional fields; no
// option remapping happens here.
func normalizeStandard(raw json.RawMessage) (quiz.Quiz, error) {
	var q quiz.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return quiz.Quiz{}, err
	}
	for i := range q.Questions {
		q.Questions[i].ApplyDefaults()
	}
	return q, nil
}
