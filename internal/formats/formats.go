package formats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/estudia-app/estudia-backend/internal/quiz"
)

// Dialect identifies one of the recognized external quiz payload shapes.
type Dialect string

const (
	DialectCompact     Dialect = "compact"      // {t, q:[...]} without m
	DialectArray       Dialect = "array"        // bare array of questions with answerOptions
	DialectMetadata    Dialect = "metadata"     // {metadata, q:[...]}
	DialectQuizWrapper Dialect = "quiz-wrapper" // {quiz:[...], title?}
	DialectStandard    Dialect = "standard"     // {title, description?, questions:[...]}
)

// Detect classifies a parsed JSON payload. Precedence is fixed: compact,
// direct array, metadata, quiz-wrapper, standard. The first matching shape
// wins; a payload that satisfies none reports false.
func Detect(v any) (Dialect, bool) {
	if _, ok := v.([]any); ok {
		return DialectArray, true
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	_, hasM := obj["m"]
	if truthy(obj["t"]) && isArray(obj["q"]) && !hasM {
		return DialectCompact, true
	}
	if truthy(obj["metadata"]) && isArray(obj["q"]) {
		return DialectMetadata, true
	}
	if isArray(obj["quiz"]) {
		return DialectQuizWrapper, true
	}
	if isArray(obj["questions"]) {
		return DialectStandard, true
	}
	return "", false
}

// Normalize converts raw JSON already classified as dialect d into the
// canonical quiz. The expander is only consulted for the compact dialect.
func Normalize(d Dialect, raw json.RawMessage, exp CompactExpander) (quiz.Quiz, error) {
	switch d {
	case DialectCompact:
		return normalizeCompact(raw, exp)
	case DialectArray:
		return normalizeArray(raw)
	case DialectMetadata:
		return normalizeMetadata(raw)
	case DialectQuizWrapper:
		return normalizeQuizWrapper(raw)
	case DialectStandard:
		return normalizeStandard(raw)
	default:
		return quiz.Quiz{}, fmt.Errorf("dialecto desconocido: %s", d)
	}
}

// UnrecognizedFormatError reports a payload that matched no dialect. It
// carries the root-level keys seen so the uploader can spot the mismatch.
type UnrecognizedFormatError struct {
	Keys []string
}

func (e *UnrecognizedFormatError) Error() string {
	if len(e.Keys) == 0 {
		return "Formato JSON no reconocido"
	}
	return "Formato JSON no reconocido (claves: " + strings.Join(e.Keys, ", ") + ")"
}

// RootKeys returns the sorted top-level keys of an object payload, or nil for
// non-object roots.
func RootKeys(v any) []string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

// truthy mirrors the loose presence checks of the source dialects: nil, empty
// string, false and zero do not count as a field being "there".
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}
