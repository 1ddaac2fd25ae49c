package repository

import (
	"database/sql"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
)

type Database interface {
	SaveArticles(articles []models.Article) error
	KnownURLs() (map[string]bool, error)
	WriteRunInfo(info string) error
}

type Repository struct {
	Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Database: NewRequests(db),
	}
}
