package questionbank

import "github.com/civicspath/backend/internal/domain/category"

// CategoryStats summarises study progress for one category of the active pool.
type CategoryStats struct {
	Category category.Category
	Total    int
	Seen     int
	Learning int // questions bookmarked in the learning list
}

// Percent of the category the user has seen, rounded down.
func (cs CategoryStats) Percent() int {
	if cs.Total == 0 {
		return 0
	}
	return cs.Seen * 100 / cs.Total
}

// ComputeCategoryStats counts, per category, the questions in pool and how
// many of them are in seen and learning. Every category is reported, in
// category.All order, even when empty.
func ComputeCategoryStats(pool []Question, seen, learning map[int]bool) []CategoryStats {
	cats := category.All()
	index := make(map[category.Category]int, len(cats))
	stats := make([]CategoryStats, len(cats))
	for i, c := range cats {
		index[c] = i
		stats[i].Category = c
	}

	for _, q := range pool {
		i, ok := index[q.Category]
		if !ok {
			continue
		}
		stats[i].Total++
		if seen[q.ID] {
			stats[i].Seen++
		}
		if learning[q.ID] {
			stats[i].Learning++
		}
	}
	return stats
}
