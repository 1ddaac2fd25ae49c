package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rostis232/yahoonews2googlesheet/internal/app/repository"
	"github.com/rostis232/yahoonews2googlesheet/internal/app/scraper"
	"github.com/rostis232/yahoonews2googlesheet/internal/app/service"
	"github.com/rostis232/yahoonews2googlesheet/internal/models"
	"github.com/sirupsen/logrus"
)

// The collected-at column and the scheduler both run in Japan time, the
// timezone of the site being scraped.
var jst = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}()

const collectedAtLayout = "2006/01/02 15:04"

type Config struct {
	DB              repository.Config
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
	ArchiveDir      string
	CronSpec        string
	Scraper         scraper.Config
	Categories      []models.Category
}

type App struct {
	repo       *repository.Repository
	service    *service.Service
	scraper    *scraper.Scraper
	categories []models.Category
	cronSpec   string

	runMu sync.Mutex
}

func NewApp(cfg Config) (*App, error) {
	a := &App{}

	// The local store is an optimization (dedup fallback, system of record);
	// a run can still scrape and export without it.
	db, err := repository.NewMariaDB(cfg.DB)
	if err != nil {
		logrus.WithError(err).Warn("Database unavailable, continuing without local store")
	} else {
		a.repo = repository.NewRepository(db)
	}

	a.scraper, err = scraper.New(cfg.Scraper)
	if err != nil {
		return nil, err
	}

	sheetsClient, err := service.NewSheets(context.Background(), cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
	if err != nil {
		return nil, err
	}
	a.service = service.NewService(sheetsClient, service.NewXLSXArchive(cfg.ArchiveDir))

	a.categories = cfg.Categories
	if len(a.categories) == 0 {
		a.categories = models.DefaultCategories()
	}

	a.cronSpec = cfg.CronSpec
	if a.cronSpec == "" {
		a.cronSpec = "0 * * * *"
	}

	return a, nil
}

// Run starts the scheduler and blocks. A fire that arrives while the
// previous collection is still running is skipped.
func (a *App) Run() error {
	c := cron.New(
		cron.WithLocation(jst),
		cron.WithLogger(cronLogger{}),
	)

	_, err := c.AddFunc(a.cronSpec, func() {
		if !a.runMu.TryLock() {
			logrus.Warn("Previous collection still running, skipping this fire")
			return
		}
		defer a.runMu.Unlock()

		if err := a.collect(context.Background()); err != nil {
			logrus.WithError(err).Error("Collection run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", a.cronSpec, err)
	}

	logrus.WithFields(logrus.Fields{"spec": a.cronSpec}).Info("Scheduler started")
	c.Run()
	return nil
}

// RunOnce executes a single collection run and returns.
func (a *App) RunOnce() error {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.collect(context.Background())
}

func (a *App) collect(ctx context.Context) error {
	start := time.Now().In(jst)
	collectedAt := start.Format(collectedAtLayout)

	logrus.Info("Collection run started")

	sheetURLs, err := a.service.ExistingURLs(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Could not read existing URLs from sheet")
		sheetURLs = make(map[string]bool)
	} else {
		logrus.WithFields(logrus.Fields{"count": len(sheetURLs)}).Info("Fetched existing URLs from sheet")
	}

	known := make(map[string]bool, len(sheetURLs))
	for url := range sheetURLs {
		known[url] = true
	}
	if a.repo != nil {
		dbURLs, err := a.repo.KnownURLs()
		if err != nil {
			logrus.WithError(err).Warn("Could not read known URLs from database")
		} else {
			for url := range dbURLs {
				known[url] = true
			}
		}
	}

	var collected []models.Article
	for _, category := range service.SortCategories(a.categories) {
		catLog := logrus.WithFields(logrus.Fields{"category": category.Name})

		links, err := a.scraper.CategoryLinks(ctx, category)
		if err != nil {
			catLog.WithError(err).Error("Listing scrape failed")
			continue
		}

		for _, link := range links {
			if known[link] {
				continue
			}

			article, err := a.scraper.Article(ctx, link)
			if errors.Is(err, scraper.ErrSkipArticle) {
				catLog.WithField("url", link).Debug("Article skipped")
				continue
			}
			if err != nil {
				catLog.WithError(err).WithField("url", link).Warn("Article scrape failed")
				continue
			}

			article.CollectedAt = collectedAt
			collected = append(collected, article)
			known[article.URL] = true

			catLog.WithFields(logrus.Fields{
				"id":    article.ID,
				"title": article.Title,
				"genre": article.Genre,
			}).Info("Article collected")
		}
	}

	newArticles := service.FilterNew(collected, sheetURLs)
	if len(newArticles) == 0 {
		logrus.Info("No new unique articles to write")
		a.writeRunInfo(fmt.Sprintf("Ok; %s", time.Now().In(jst).Format(time.DateTime)))
		return nil
	}

	wrote, err := a.service.AppendArticles(ctx, newArticles, sheetURLs)
	if err != nil {
		a.writeRunInfo(fmt.Sprintf("ERROR; %s; GoogleSheets: %s", time.Now().In(jst).Format(time.DateTime), err))
		return fmt.Errorf("append to sheet: %w", err)
	}

	if a.repo != nil {
		if err := a.repo.SaveArticles(newArticles); err != nil {
			logrus.WithError(err).Warn("Could not save articles to database")
		}
	}

	if err := a.service.Archive(newArticles, start); err != nil {
		logrus.WithError(err).Warn("Could not write xlsx archive")
	}

	a.writeRunInfo(fmt.Sprintf("Ok; %s", time.Now().In(jst).Format(time.DateTime)))
	logrus.WithFields(logrus.Fields{"written": wrote, "collected": len(collected)}).Info("Collection run completed")
	return nil
}

func (a *App) writeRunInfo(info string) {
	if a.repo == nil {
		return
	}
	if err := a.repo.WriteRunInfo(info); err != nil {
		logrus.WithError(err).Warn("Could not write run info to database")
	}
}

// cronLogger adapts the cron scheduler's logging callbacks onto logrus.
type cronLogger struct{}

func (cronLogger) fields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logrus.WithFields(l.fields(keysAndValues)).Debugf("cron: %s", msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logrus.WithFields(l.fields(keysAndValues)).WithError(err).Errorf("cron: %s", msg)
}
