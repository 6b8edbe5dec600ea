// Package validate gives the uploader itemized feedback on a raw quiz payload
// before (and independently of) normalization. Findings are categorized as
// blocking errors, non-blocking warnings and informational notes; nothing in
// here ever mutates the payload or panics.
package validate

import (
	"encoding/json"
	"fmt"
)

type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Info     []string `json:"info"`
}

// OK reports whether the payload is structurally acceptable for submission.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// ValidateText parses s as JSON and validates the result. A syntax failure
// short-circuits with a single root-level error carrying the parser message.
func ValidateText(s string) Report {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return Report{Errors: []string{"❌ Sintaxis JSON inválida: " + err.Error()}}
	}
	return Validate(v)
}

// Validate inspects an already-parsed payload. The dialect sniffing mirrors
// the normalizer's precedence for reporting purposes, but each branch applies
// its own rules.
func Validate(v any) Report {
	var r Report

	arr, isArr := v.([]any)
	obj, isObj := v.(map[string]any)

	if !isArr && !isObj {
		r.Errors = append(r.Errors, rootShapeError)
		return r
	}

	if isArr {
		validateGenericQuestions(&r, arr)
		return r
	}

	tOK := truthy(obj["t"])
	metaOK := truthy(obj["metadata"])
	qOK := truthy(obj["q"])
	quizArr, hasQuiz := obj["quiz"].([]any)
	questionsArr, hasQuestions := obj["questions"].([]any)

	switch {
	case tOK && qOK:
		r.Info = append(r.Info, "ℹ️ Formato compacto detectado")
		if qs, ok := obj["q"].([]any); ok {
			r.Info = append(r.Info, fmt.Sprintf("ℹ️ %d preguntas encontradas", len(qs)))
		} else {
			r.Errors = append(r.Errors, "❌ 'q' (preguntas) debe ser un array")
		}
	case metaOK && qOK:
		r.Info = append(r.Info, "ℹ️ Formato Metadata detectado")
		qs, ok := obj["q"].([]any)
		if !ok {
			r.Errors = append(r.Errors, "❌ 'q' (preguntas) debe ser un array")
			return r
		}
		r.Info = append(r.Info, fmt.Sprintf("ℹ️ %d preguntas encontradas", len(qs)))
		validateMetadataQuestions(&r, qs)
	case hasQuiz:
		validateGenericQuestions(&r, quizArr)
	case hasQuestions:
		validateGenericQuestions(&r, questionsArr)
	default:
		r.Errors = append(r.Errors, rootShapeError)
	}
	return r
}

const rootShapeError = "❌ Estructura raíz inválida. Se espera array, objeto con 'quiz', 'questions', {metadata, q} o formato compacto {t, q}"

func validateMetadataQuestions(r *Report, qs []any) {
	for idx, raw := range qs {
		q, _ := raw.(map[string]any)
		if !truthy(q["x"]) {
			r.Errors = append(r.Errors, fmt.Sprintf("❌ P%d: Falta el enunciado 'x'", idx+1))
		}
		opts, ok := q["o"].([]any)
		if !ok {
			r.Errors = append(r.Errors, fmt.Sprintf("❌ P%d: Faltan opciones 'o'", idx+1))
			continue
		}
		// Missing correctness is recoverable by the uploader, so it is a
		// warning here, never an error.
		if countCorrect(opts, "c") == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("⚠️ P%d: No tiene respuesta correcta marcada (c=true)", idx+1))
		}
	}
}

func validateGenericQuestions(r *Report, qs []any) {
	r.Info = append(r.Info, fmt.Sprintf("ℹ️ %d preguntas encontradas", len(qs)))
	for idx, raw := range qs {
		q, _ := raw.(map[string]any)
		if !truthy(q["question"]) {
			r.Errors = append(r.Errors, fmt.Sprintf("❌ P%d: Falta el texto de la pregunta", idx+1))
		}
		opts, ok := q["answerOptions"].([]any)
		if !ok {
			r.Errors = append(r.Errors, fmt.Sprintf("❌ P%d: Faltan opciones de respuesta", idx+1))
			continue
		}
		correct := countCorrect(opts, "isCorrect")
		if correct == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("⚠️ P%d: No tiene respuesta correcta marcada", idx+1))
		}
		if correct > 1 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("⚠️ P%d: Tiene múltiples respuestas correctas", idx+1))
		}
	}
}

func countCorrect(opts []any, field string) int {
	n := 0
	for _, raw := range opts {
		if o, ok := raw.(map[string]any); ok && truthy(o[field]) {
			n++
		}
	}
	return n
}

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
