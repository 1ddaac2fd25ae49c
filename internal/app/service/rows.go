package service

import (
	"fmt"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
)

// Column order of the target sheet. Existing spreadsheets already use these
// headers, so the order must not change.
var headerRow = []string{"ID", "収集時刻", "タイトル", "情報源", "掲載時刻", "URL", "ジャンル", "本文"}

const urlColumn = 5

func headerValues() []interface{} {
	row := make([]interface{}, len(headerRow))
	for i, h := range headerRow {
		row[i] = h
	}
	return row
}

func articleRow(a models.Article) []interface{} {
	return []interface{}{
		a.ID,
		a.CollectedAt,
		a.Title,
		a.Provider,
		a.PublishedAt,
		a.URL,
		a.Genre,
		a.Body,
	}
}

// urlSet extracts the URL column of previously written rows, skipping the
// header row and rows too short to carry a URL.
func urlSet(values [][]interface{}) map[string]bool {
	urls := make(map[string]bool)
	for i, row := range values {
		if i == 0 || len(row) <= urlColumn {
			continue
		}
		if url := fmt.Sprint(row[urlColumn]); url != "" {
			urls[url] = true
		}
	}
	return urls
}
