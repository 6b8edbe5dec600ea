package admin_test

import (
	"context"
	"testing"

	"github.com/estudia-app/estudia-backend/internal/admin"
	"github.com/estudia-app/estudia-backend/internal/entity"
	"github.com/estudia-app/estudia-backend/internal/kv"
)

func TestGenerateStructure(t *testing.T) {
	ctx := context.Background()
	store := entity.NewStore(kv.NewMemory())

	// pre-existing records get wiped before seeding
	_, _ = store.Create(ctx, entity.Course, entity.Record{"name": "viejo"})

	created, err := admin.GenerateStructure(ctx, store)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := 0
	for _, c := range admin.AcademicStructure {
		want++
		for _, s := range c.Subjects {
			want += 1 + len(s.Folders)
		}
	}
	if created != want {
		t.Fatalf("created = %d, want %d", created, want)
	}

	courses, _ := store.List(ctx, entity.Course, "")
	if len(courses) != len(admin.AcademicStructure) {
		t.Fatalf("courses = %d", len(courses))
	}
	for _, c := range courses {
		if c["name"] == "viejo" {
			t.Fatalf("old course survived the wipe")
		}
	}

	// folders hang off their subject
	subjects, _ := store.List(ctx, entity.Subject, "")
	if len(subjects) == 0 {
		t.Fatalf("no subjects created")
	}
	folders, _ := store.Filter(ctx, entity.Folder, map[string]any{"subject_id": subjects[0]["id"]}, "")
	if len(folders) == 0 {
		t.Fatalf("no folders linked to subject %v", subjects[0]["id"])
	}
}

func TestRemoveDuplicateQuizzes(t *testing.T) {
	ctx := context.Background()
	store := entity.NewStore(kv.NewMemory())

	_, _ = store.Create(ctx, entity.Quiz, entity.Record{"title": "Anatomía", "subject_id": "s1", "created_date": "2024-01-01T00:00:00Z"})
	keep, _ := store.Create(ctx, entity.Quiz, entity.Record{"title": " anatomía ", "subject_id": "s1", "created_date": "2024-06-01T00:00:00Z"})
	_, _ = store.Create(ctx, entity.Quiz, entity.Record{"title": "Anatomía", "subject_id": "s2", "created_date": "2024-01-01T00:00:00Z"})
	_, _ = store.Create(ctx, entity.Quiz, entity.Record{"title": "Otra", "created_date": "2024-01-01T00:00:00Z"})

	deleted, err := admin.RemoveDuplicateQuizzes(ctx, store)
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	left, _ := store.List(ctx, entity.Quiz, "")
	if len(left) != 3 {
		t.Fatalf("remaining = %d", len(left))
	}
	found := false
	for _, q := range left {
		if q["id"] == keep["id"] {
			found = true
		}
	}
	if !found {
		t.Fatalf("newest duplicate was not the one kept")
	}
}
