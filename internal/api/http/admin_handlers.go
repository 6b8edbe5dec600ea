package http

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/estudia-app/estudia-backend/internal/admin"
	"github.com/estudia-app/estudia-backend/internal/entity"
	"github.com/estudia-app/estudia-backend/internal/logging"
)

// POST /api/admin/structure/generate
func GenerateStructureHandler(store *entity.Store, log *logging.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		created, err := admin.GenerateStructure(r.Context(), store)
		if err != nil {
			log.Error("structure generation failed", "err", err)
			nethttp.Error(w, err.Error(), nethttp.StatusInternalServerError)
			return
		}
		log.Info("academic structure regenerated", "created", created)
		_ = json.NewEncoder(w).Encode(map[string]int{"created": created})
	}
}

// POST /api/admin/quizzes/dedupe
func DedupeQuizzesHandler(store *entity.Store, log *logging.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		deleted, err := admin.RemoveDuplicateQuizzes(r.Context(), store)
		if err != nil {
			log.Error("dedupe failed", "err", err)
			nethttp.Error(w, err.Error(), nethttp.StatusInternalServerError)
			return
		}
		log.Info("duplicate quizzes removed", "deleted", deleted)
		_ = json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
