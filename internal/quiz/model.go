package quiz

// Option is a single answer choice. The ID is positional and assigned by the
// normalizer; Rationale stays nil when the source dialect carries none.
type Option struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	IsCorrect bool    `json:"isCorrect"`
	Rationale *string `json:"rationale"`
}

type Question struct {
	Question      string   `json:"question"`
	Options       []Option `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index of first correct option, -1 if none
	Type          string   `json:"type"`          // multiple-choice, image
	Difficulty    string   `json:"difficulty"`    // fácil, moderado, difícil
	BloomLevel    string   `json:"bloomLevel"`
	Tags          []string `json:"tags"`
	Hint          string   `json:"hint"`
}

type Quiz struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

const (
	TypeMultipleChoice = "multiple-choice"
	TypeImage          = "image"

	DifficultyEasy   = "fácil"
	DifficultyMedium = "moderado"
	DifficultyHard   = "difícil"

	DefaultBloomLevel = "Comprender"
)

// ApplyDefaults fills the optional per-question fields a source may omit.
func (q *Question) ApplyDefaults() {
	if q.Type == "" {
		q.Type = TypeMultipleChoice
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if q.BloomLevel == "" {
		q.BloomLevel = DefaultBloomLevel
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
}

// FirstCorrect returns the index of the first option flagged correct, or -1.
func FirstCorrect(opts []Option) int {
	for i, o := range opts {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}
