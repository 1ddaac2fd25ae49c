package service

import (
	"sort"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
	"github.com/sirupsen/logrus"
)

// FilterNew drops articles whose URL is already known and deduplicates the
// slice itself, first occurrence wins. The known set is not modified.
func FilterNew(articles []models.Article, known map[string]bool) []models.Article {
	result := make([]models.Article, 0, len(articles))
	seen := make(map[string]bool, len(articles))

	for _, a := range articles {
		if known[a.URL] || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		result = append(result, a)
	}

	logrus.WithFields(logrus.Fields{"count": len(result)}).Info("Filtered new articles")
	return result
}

// SortCategories orders categories by ascending priority, ties broken by
// name, without modifying the input.
func SortCategories(categories []models.Category) []models.Category {
	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Name < sorted[j].Name
	})

	return sorted
}
