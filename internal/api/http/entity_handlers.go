package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estudia-app/estudia-backend/internal/entity"
)

// Generic CRUD over the named collections. The collection segment must name a
// known collection; everything else about the record shape is caller-defined.

// GET /api/entities/{collection}?order_by=-created_date&<field>=<value>...
func ListEntitiesHandler(store *entity.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		col, ok := entity.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			nethttp.Error(w, "unknown collection", nethttp.StatusNotFound)
			return
		}

		orderBy := r.URL.Query().Get("order_by")
		criteria := map[string]any{}
		for k, vs := range r.URL.Query() {
			if k == "order_by" || len(vs) == 0 {
				continue
			}
			criteria[k] = vs[0]
		}

		var (
			items []entity.Record
			err   error
		)
		if len(criteria) > 0 {
			items, err = store.Filter(r.Context(), col, criteria, orderBy)
		} else {
			items, err = store.List(r.Context(), col, orderBy)
		}
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(items)
	}
}

// POST /api/entities/{collection}
func CreateEntityHandler(store *entity.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		col, ok := entity.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			nethttp.Error(w, "unknown collection", nethttp.StatusNotFound)
			return
		}
		var data entity.Record
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		rec, err := store.Create(r.Context(), col, data)
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		w.WriteHeader(nethttp.StatusCreated)
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// GET /api/entities/{collection}/{id}
func GetEntityHandler(store *entity.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		col, ok := entity.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			nethttp.Error(w, "unknown collection", nethttp.StatusNotFound)
			return
		}
		rec, err := store.Get(r.Context(), col, chi.URLParam(r, "id"))
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		if rec == nil {
			nethttp.Error(w, "not found", nethttp.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// PATCH /api/entities/{collection}/{id}
func UpdateEntityHandler(store *entity.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		col, ok := entity.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			nethttp.Error(w, "unknown collection", nethttp.StatusNotFound)
			return
		}
		var data entity.Record
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		rec, err := store.Update(r.Context(), col, chi.URLParam(r, "id"), data)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				nethttp.Error(w, "not found", nethttp.StatusNotFound)
				return
			}
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// DELETE /api/entities/{collection}/{id}
func DeleteEntityHandler(store *entity.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		col, ok := entity.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			nethttp.Error(w, "unknown collection", nethttp.StatusNotFound)
			return
		}
		if err := store.Delete(r.Context(), col, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				nethttp.Error(w, "not found", nethttp.StatusNotFound)
				return
			}
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}
