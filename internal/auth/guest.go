package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	authmw "github.com/estudia-app/estudia-backend/internal/auth/middleware"
	"github.com/estudia-app/estudia-backend/internal/entity"
)

// GuestLoginHandler creates an anonymous student identity backed by a User
// record, so guest activity still carries a created_by.
func GuestLoginHandler(a *authmw.AuthService, store *entity.Store) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sfx := strconv.FormatInt(time.Now().UnixNano(), 36)
		username := "guest-" + sfx[len(sfx)-6:]

		rec, err := store.Create(r.Context(), entity.User, entity.Record{
			"username": username,
			"role":     "student",
			"guest":    true,
		})
		if err != nil {
			http.Error(w, "create guest", http.StatusInternalServerError)
			return
		}
		userID, _ := rec["id"].(string)

		tok, err := a.IssueJWT(userID, "student")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: username})
	}
}
