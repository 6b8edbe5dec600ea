// Package admin holds the maintenance flows behind the admin screens:
// regenerating the academic Course → Subject → Folder hierarchy and pruning
// duplicate quizzes.
package admin

import (
	"context"

	"github.com/estudia-app/estudia-backend/internal/entity"
)

type CourseSeed struct {
	Name        string
	Description string
	Color       string
	Subjects    []SubjectSeed
}

type SubjectSeed struct {
	Name    string
	Color   string
	Folders []string // partial-exam folders, created under the subject
}

var defaultPartials = []string{"Primer Parcial", "Segundo Parcial", "Tercer Parcial", "Cuarto Parcial", "Final"}

// AcademicStructure is the built-in seed used by the regenerate flow.
var AcademicStructure = []CourseSeed{
	{
		Name: "Primer Semestre", Description: "Primer ciclo de Licenciatura", Color: "#4f46e5",
		Subjects: []SubjectSeed{
			{Name: "Anatomía I", Color: "#ef4444", Folders: defaultPartials},
			{Name: "Biofísica", Color: "#3b82f6", Folders: defaultPartials},
			{Name: "Bioquímica", Color: "#10b981", Folders: defaultPartials},
			{Name: "Histología I", Color: "#f59e0b", Folders: defaultPartials},
		},
	},
	{
		Name: "Segundo Semestre", Description: "Segundo ciclo de Licenciatura", Color: "#0ea5e9",
		Subjects: []SubjectSeed{
			{Name: "Anatomía II", Color: "#ef4444", Folders: defaultPartials},
			{Name: "Fisiología", Color: "#8b5cf6", Folders: defaultPartials},
			{Name: "Embriología", Color: "#ec4899", Folders: defaultPartials},
		},
	},
}

// GenerateStructure wipes the Course/Subject/Folder collections and re-seeds
// them from the academic structure. Returns the number of records created.
func GenerateStructure(ctx context.Context, store *entity.Store) (int, error) {
	for _, col := range []entity.Collection{entity.Course, entity.Folder, entity.Subject} {
		items, err := store.List(ctx, col, "")
		if err != nil {
			return 0, err
		}
		for _, it := range items {
			id, _ := it["id"].(string)
			if err := store.Delete(ctx, col, id); err != nil {
				return 0, err
			}
		}
	}

	created := 0
	for _, courseSeed := range AcademicStructure {
		course, err := store.Create(ctx, entity.Course, entity.Record{
			"name":        courseSeed.Name,
			"description": courseSeed.Description,
			"color":       courseSeed.Color,
			"icon":        "GraduationCap",
		})
		if err != nil {
			return created, err
		}
		created++

		for _, subjectSeed := range courseSeed.Subjects {
			color := subjectSeed.Color
			if color == "" {
				color = "#6366f1"
			}
			subject, err := store.Create(ctx, entity.Subject, entity.Record{
				"name":        subjectSeed.Name,
				"course_id":   course["id"],
				"color":       color,
				"description": "Materia del " + courseSeed.Name,
			})
			if err != nil {
				return created, err
			}
			created++

			for _, folderName := range subjectSeed.Folders {
				_, err := store.Create(ctx, entity.Folder, entity.Record{
					"name":        folderName,
					"course_id":   course["id"],
					"subject_id":  subject["id"],
					"color":       color,
					"description": "Evaluación parcial",
				})
				if err != nil {
					return created, err
				}
				created++
			}
		}
	}
	return created, nil
}
