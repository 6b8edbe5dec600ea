// Package entity is a generic, collection-scoped CRUD layer over the kv
// substrate. It is schema-agnostic: records are free-form maps and domain
// validation is the ingestion pipeline's job, done before anything lands
// here. Every operation is a whole-collection read-modify-write; concurrent
// writers to the same collection race last-write-wins, an accepted hazard of
// this local backing store.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estudia-app/estudia-backend/internal/kv"
)

// Record is one persisted entity. id, created_date and updated_date are
// store-managed; everything else belongs to the caller.
type Record = map[string]any

var ErrNotFound = errors.New("item not found")

type Store struct {
	kv  kv.Store
	now func() time.Time
}

func NewStore(s kv.Store) *Store { return &Store{kv: s, now: time.Now} }

// List returns all records in the collection. orderBy is a field name,
// prefixed with '-' for descending order; empty means substrate order.
func (s *Store) List(ctx context.Context, col Collection, orderBy string) ([]Record, error) {
	items, _, err := s.load(ctx, col)
	if err != nil {
		return nil, err
	}
	sortRecords(items, orderBy)
	return items, nil
}

// Filter returns the records whose fields strictly equal every criterion.
// Records missing a criterion field do not match.
func (s *Store) Filter(ctx context.Context, col Collection, criteria map[string]any, orderBy string) ([]Record, error) {
	items, _, err := s.load(ctx, col)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if matches(it, criteria) {
			out = append(out, it)
		}
	}
	sortRecords(out, orderBy)
	return out, nil
}

// Get looks a record up by id. A missing record is (nil, nil), not an error.
func (s *Store) Get(ctx context.Context, col Collection, id string) (Record, error) {
	items, _, err := s.load(ctx, col)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it["id"] == id {
			return it, nil
		}
	}
	return nil, nil
}

// Create assigns a fresh id and created_date, merges the caller's fields,
// appends and persists. The generated id is <collection>_<millis>_<suffix>.
func (s *Store) Create(ctx context.Context, col Collection, data Record) (Record, error) {
	items, _, err := s.load(ctx, col)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec := Record{
		"id":           strings.ToLower(string(col)) + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + randSuffix(),
		"created_date": now.UTC().Format(time.RFC3339),
	}
	for k, v := range data {
		rec[k] = v
	}
	items = append(items, rec)
	if err := s.save(ctx, col, items); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges data onto the existing record and stamps updated_date.
func (s *Store) Update(ctx context.Context, col Collection, id string, data Record) (Record, error) {
	items, _, err := s.load(ctx, col)
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		if it["id"] != id {
			continue
		}
		for k, v := range data {
			it[k] = v
		}
		it["updated_date"] = s.now().UTC().Format(time.RFC3339)
		items[i] = it
		if err := s.save(ctx, col, items); err != nil {
			return nil, err
		}
		return it, nil
	}
	return nil, ErrNotFound
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, col Collection, id string) error {
	items, _, err := s.load(ctx, col)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it["id"] != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return ErrNotFound
	}
	return s.save(ctx, col, kept)
}

func (s *Store) load(ctx context.Context, col Collection) ([]Record, string, error) {
	key, ok := col.storageKey()
	if !ok {
		return []Record{}, "", nil
	}
	val, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, key, err
	}
	if !found || val == "" {
		return []Record{}, key, nil
	}
	var items []Record
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, key, err
	}
	return items, key, nil
}

func (s *Store) save(ctx context.Context, col Collection, items []Record) error {
	key, ok := col.storageKey()
	if !ok {
		return nil
	}
	buf, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(buf))
}

func matches(rec Record, criteria map[string]any) bool {
	for k, want := range criteria {
		got, ok := rec[k]
		if !ok || !equalValue(got, want) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	af, aok := asNumber(a)
	bf, bok := asNumber(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// sortRecords orders by the records' native ordering on the field: numbers
// numerically, strings (dates included) lexicographically. Missing fields
// compare equal, so their relative order is arbitrary.
func sortRecords(items []Record, orderBy string) {
	if orderBy == "" {
		return
	}
	desc := strings.HasPrefix(orderBy, "-")
	field := strings.TrimPrefix(orderBy, "-")
	sort.Slice(items, func(i, j int) bool {
		c := compareValue(items[i][field], items[j][field])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareValue(a, b any) int {
	if a == nil || b == nil {
		return 0
	}
	if af, ok := asNumber(a); ok {
		if bf, ok := asNumber(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}
	return 0
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func randSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
