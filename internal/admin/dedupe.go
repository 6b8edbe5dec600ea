package admin

import (
	"context"
	"sort"
	"strings"

	"github.com/estudia-app/estudia-backend/internal/entity"
)

// RemoveDuplicateQuizzes groups quizzes by lowercased title + subject_id and
// deletes all but the most recently created of each group. Returns the number
// deleted.
func RemoveDuplicateQuizzes(ctx context.Context, store *entity.Store) (int, error) {
	quizzes, err := store.List(ctx, entity.Quiz, "-created_date")
	if err != nil {
		return 0, err
	}

	groups := map[string][]entity.Record{}
	for _, q := range quizzes {
		title, _ := q["title"].(string)
		subjectID, _ := q["subject_id"].(string)
		if subjectID == "" {
			subjectID = "no-subject"
		}
		key := strings.ToLower(strings.TrimSpace(title)) + "_" + subjectID
		groups[key] = append(groups[key], q)
	}

	deleted := 0
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		// newest first; created_date is RFC3339 so string order is time order
		sort.Slice(group, func(i, j int) bool {
			di, _ := group[i]["created_date"].(string)
			dj, _ := group[j]["created_date"].(string)
			return di > dj
		})
		for _, q := range group[1:] {
			id, _ := q["id"].(string)
			if err := store.Delete(ctx, entity.Quiz, id); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}
