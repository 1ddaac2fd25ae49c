package repository

import (
	"database/sql"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
)

type Requests struct {
	db *sql.DB
}

func NewRequests(db *sql.DB) *Requests {
	return &Requests{
		db: db,
	}
}

// SaveArticles inserts the articles, silently keeping the first stored
// version when a URL is already present.
func (r *Requests) SaveArticles(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	query := `INSERT IGNORE INTO articles
		(id, collected_at, title, provider, published_at, url, genre, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.Exec(
			a.ID,
			a.CollectedAt,
			a.Title,
			a.Provider,
			a.PublishedAt,
			a.URL,
			a.Genre,
			a.Body,
		); err != nil {
			return err
		}
	}
	return nil
}

// KnownURLs returns the URLs of all stored articles.
func (r *Requests) KnownURLs() (map[string]bool, error) {
	urls := make(map[string]bool)

	rows, err := r.db.Query("SELECT url FROM articles")
	if err != nil {
		return urls, err
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return urls, err
		}
		urls[url] = true
	}
	return urls, rows.Err()
}

// WriteRunInfo stores one status line per collection run.
func (r *Requests) WriteRunInfo(info string) error {
	_, err := r.db.Exec("INSERT INTO runs (result) VALUES (?)", info)
	return err
}
