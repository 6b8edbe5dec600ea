// Package ingest drives the pipeline that turns pasted or uploaded JSON into
// a canonical quiz: parse, classify the dialect, normalize. Validation is a
// separate concern (internal/validate) so callers can give live feedback on
// partially-typed input and only ingest on explicit submission.
package ingest

import (
	"encoding/json"

	"github.com/estudia-app/estudia-backend/internal/formats"
	"github.com/estudia-app/estudia-backend/internal/quiz"
)

// SyntaxError reports input that is not valid JSON. The parser's message is
// surfaced verbatim.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "Sintaxis JSON inválida: " + e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// Pipeline holds the collaborators ingestion needs. The zero value is usable
// and falls back to the built-in compact expander.
type Pipeline struct {
	Expander formats.CompactExpander
}

func New(exp formats.CompactExpander) *Pipeline { return &Pipeline{Expander: exp} }

// Ingest parses rawText and normalizes it into a canonical quiz. Failures are
// one of *SyntaxError, *formats.UnrecognizedFormatError or *formats.ExpandError.
func (p *Pipeline) Ingest(rawText string) (quiz.Quiz, error) {
	return p.IngestNamed(rawText, "Quiz")
}

// IngestNamed is Ingest with a fallback title (typically the upload's file
// name) used when the payload itself carries none.
func (p *Pipeline) IngestNamed(rawText, defaultTitle string) (quiz.Quiz, error) {
	raw := []byte(rawText)

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return quiz.Quiz{}, &SyntaxError{Err: err}
	}

	dialect, ok := formats.Detect(v)
	if !ok {
		return quiz.Quiz{}, &formats.UnrecognizedFormatError{Keys: formats.RootKeys(v)}
	}

	q, err := formats.Normalize(dialect, raw, p.Expander)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if q.Title == "" {
		q.Title = defaultTitle
	}
	return q, nil
}
