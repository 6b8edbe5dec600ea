package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/estudia-app/estudia-backend/internal/api/http"
	"github.com/estudia-app/estudia-backend/internal/entity"
	"github.com/estudia-app/estudia-backend/internal/ingest"
	"github.com/estudia-app/estudia-backend/internal/kv"
	"github.com/estudia-app/estudia-backend/internal/logging"
)

func testRouter(t *testing.T) (*chi.Mux, *entity.Store) {
	t.Helper()
	store := entity.NewStore(kv.NewMemory())
	logger, err := logging.New("offline")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	pipeline := ingest.New(nil)

	r := chi.NewRouter()
	r.Post("/api/quizzes/validate", api.ValidateQuizHandler())
	r.Post("/api/quizzes/import", api.ImportQuizHandler(pipeline, store, nil, logger))
	r.Route("/api/entities/{collection}", func(er chi.Router) {
		er.Get("/", api.ListEntitiesHandler(store))
		er.Post("/", api.CreateEntityHandler(store))
		er.Get("/{id}", api.GetEntityHandler(store))
		er.Patch("/{id}", api.UpdateEntityHandler(store))
		er.Delete("/{id}", api.DeleteEntityHandler(store))
	})
	return r, store
}

func do(t *testing.T, r nethttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportQuizEndToEnd(t *testing.T) {
	r, store := testRouter(t)

	payload := `{"quiz":[{"question":"2+2?","answerOptions":[{"text":"3","isCorrect":false},{"text":"4","isCorrect":true,"rationale":"sum"}]}]}`
	body, _ := json.Marshal(map[string]string{"json_text": payload, "title": "Mate", "subject_id": "s1"})

	w := do(t, r, "POST", "/api/quizzes/import", string(body))
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, _ := rec["id"].(string)
	if !strings.HasPrefix(id, "quiz_") {
		t.Fatalf("id = %q", id)
	}
	if rec["question_count"] != float64(1) || rec["subject_id"] != "s1" {
		t.Fatalf("rec = %+v", rec)
	}

	items, _ := store.List(context.Background(), entity.Quiz, "")
	if len(items) != 1 {
		t.Fatalf("stored quizzes = %d", len(items))
	}
}

func TestImportRejectsBadSyntaxBeforeStore(t *testing.T) {
	r, store := testRouter(t)

	body, _ := json.Marshal(map[string]string{"json_text": `{bad json`})
	w := do(t, r, "POST", "/api/quizzes/import", string(body))
	if w.Code != nethttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}

	items, _ := store.List(context.Background(), entity.Quiz, "")
	if len(items) != 0 {
		t.Fatalf("nothing should reach the store, got %d", len(items))
	}
}

func TestImportBlockedByValidationErrors(t *testing.T) {
	r, _ := testRouter(t)

	// structurally wrong: questions missing their text
	payload := `{"quiz":[{"answerOptions":[{"text":"a","isCorrect":true}]}]}`
	body, _ := json.Marshal(map[string]string{"json_text": payload})
	w := do(t, r, "POST", "/api/quizzes/import", string(body))
	if w.Code != nethttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var report struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil || len(report.Errors) == 0 {
		t.Fatalf("report = %s, err = %v", w.Body.String(), err)
	}
}

func TestValidateEndpointAlways200(t *testing.T) {
	r, _ := testRouter(t)

	body, _ := json.Marshal(map[string]string{"json_text": `{"foo":1}`})
	w := do(t, r, "POST", "/api/quizzes/validate", string(body))
	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report struct {
		Errors []string `json:"errors"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &report)
	if len(report.Errors) != 1 {
		t.Fatalf("report = %s", w.Body.String())
	}
}

func TestEntityCRUD(t *testing.T) {
	r, _ := testRouter(t)

	w := do(t, r, "POST", "/api/entities/Course", `{"name":"Anatomía","order":1}`)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	var rec map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	id, _ := rec["id"].(string)

	w = do(t, r, "GET", "/api/entities/Course/"+id, "")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = do(t, r, "PATCH", "/api/entities/Course/"+id, `{"name":"Fisiología"}`)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("patch status = %d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	if rec["name"] != "Fisiología" || rec["updated_date"] == nil {
		t.Fatalf("patched rec = %+v", rec)
	}

	w = do(t, r, "GET", "/api/entities/Course/?name=Fisiología", "")
	if w.Code != nethttp.StatusOK || !strings.Contains(w.Body.String(), id) {
		t.Fatalf("filter list = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, "DELETE", "/api/entities/Course/"+id, "")
	if w.Code != nethttp.StatusOK || !strings.Contains(w.Body.String(), "true") {
		t.Fatalf("delete = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, "DELETE", "/api/entities/Course/"+id, "")
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("second delete = %d", w.Code)
	}
}

func TestUnknownCollection404(t *testing.T) {
	r, _ := testRouter(t)
	w := do(t, r, "GET", "/api/entities/Nope/", "")
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}
