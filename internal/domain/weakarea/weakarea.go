package weakarea

import (
	"sort"

	"github.com/civicspath/backend/internal/domain/progress"
)

// ReplayCap bounds the weak-area replay list.
const ReplayCap = 20

// Miss is how often a question was answered wrongly across stored results.
type Miss struct {
	QuestionID int
	Count      int
}

// Rank orders the missed questions by descending miss count. Ties keep the
// order in which the question was first missed, scanning results as stored.
func Rank(results []progress.TestResult) []Miss {
	index := map[int]int{}
	var misses []Miss
	for _, r := range results {
		for _, a := range r.Answers {
			if a.IsCorrect {
				continue
			}
			i, ok := index[a.QuestionID]
			if !ok {
				i = len(misses)
				index[a.QuestionID] = i
				misses = append(misses, Miss{QuestionID: a.QuestionID})
			}
			misses[i].Count++
		}
	}

	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].Count > misses[j].Count
	})
	return misses
}

// ReplayIDs unions the ranked misses with the still-learning items, ranked
// misses first, and caps the list at limit.
func ReplayIDs(ranked []Miss, learning []progress.LearningItem, limit int) []int {
	seen := map[int]bool{}
	ids := make([]int, 0, limit)
	add := func(id int) {
		if len(ids) < limit && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, m := range ranked {
		add(m.QuestionID)
	}
	for _, item := range learning {
		if item.Status == progress.StillLearning {
			add(item.QuestionID)
		}
	}
	return ids
}
