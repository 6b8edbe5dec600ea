package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"strings"

	authmw "github.com/estudia-app/estudia-backend/internal/auth/middleware"
	"github.com/estudia-app/estudia-backend/internal/entity"
	"github.com/estudia-app/estudia-backend/internal/formats"
	"github.com/estudia-app/estudia-backend/internal/ingest"
	"github.com/estudia-app/estudia-backend/internal/logging"
	"github.com/estudia-app/estudia-backend/internal/storage"
	"github.com/estudia-app/estudia-backend/internal/validate"
)

// Handlers only — routes live in main.go.

// POST /api/quizzes/validate {json_text}
// Always 200: the report itself says whether submission would be blocked.
func ValidateQuizHandler() nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			JSONText string `json:"json_text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.JSONText) == "" {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(validate.ValidateText(req.JSONText))
	}
}

// POST /api/quizzes/import {json_text, title?, subject_id?, folder_id?}
func ImportQuizHandler(p *ingest.Pipeline, store *entity.Store, arch storage.Archive, log *logging.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			JSONText  string `json:"json_text"`
			Title     string `json:"title"`
			SubjectID string `json:"subject_id"`
			FolderID  string `json:"folder_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.JSONText) == "" {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}

		report := validate.ValidateText(req.JSONText)
		if !report.OK() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(nethttp.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(report)
			return
		}

		defaultTitle := req.Title
		if defaultTitle == "" {
			defaultTitle = "Quiz"
		}
		q, err := p.IngestNamed(req.JSONText, defaultTitle)
		if err != nil {
			var (
				synErr *ingest.SyntaxError
				fmtErr *formats.UnrecognizedFormatError
				expErr *formats.ExpandError
			)
			switch {
			case errors.As(err, &synErr), errors.As(err, &fmtErr), errors.As(err, &expErr):
				nethttp.Error(w, err.Error(), nethttp.StatusBadRequest)
			default:
				nethttp.Error(w, err.Error(), nethttp.StatusInternalServerError)
			}
			return
		}

		data := entity.Record{
			"title":          q.Title,
			"description":    q.Description,
			"questions":      q.Questions,
			"question_count": len(q.Questions),
		}
		if req.SubjectID != "" {
			data["subject_id"] = req.SubjectID
		}
		if req.FolderID != "" {
			data["folder_id"] = req.FolderID
		}
		if sub := authmw.SubjectFromContext(r.Context()); sub != "" {
			data["created_by"] = sub
		}

		rec, err := store.Create(r.Context(), entity.Quiz, data)
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}

		// keep the original payload next to the normalized quiz
		if arch != nil {
			id, _ := rec["id"].(string)
			if _, err := arch.Put("uploads/"+id+".json", strings.NewReader(req.JSONText)); err != nil {
				log.Warn("archive upload failed", "quiz_id", id, "err", err)
			}
		}

		log.Info("quiz imported", "title", q.Title, "questions", len(q.Questions))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusCreated)
		_ = json.NewEncoder(w).Encode(rec)
	}
}
