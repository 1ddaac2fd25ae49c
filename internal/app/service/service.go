package service

import (
	"context"
	"time"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
)

type SheetExporter interface {
	ExistingURLs(ctx context.Context) (map[string]bool, error)
	AppendArticles(ctx context.Context, articles []models.Article, existing map[string]bool) (int, error)
}

type Archiver interface {
	Archive(articles []models.Article, month time.Time) error
}

type Service struct {
	SheetExporter
	Archiver
}

func NewService(sheets *Sheets, archive *XLSXArchive) *Service {
	return &Service{
		SheetExporter: sheets,
		Archiver:      archive,
	}
}
