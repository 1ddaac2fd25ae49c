package service

import (
	"context"
	"fmt"
	"os"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheets appends collected articles to one sheet of one spreadsheet.
type Sheets struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheets builds the sheets client from a service account key file. The
// file is consumed verbatim, no transformation.
func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Sheets, error) {
	credBytes, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credBytes, "https://www.googleapis.com/auth/spreadsheets")
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	return &Sheets{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// ExistingURLs reads the whole sheet and returns the set of URLs already
// written (column 6).
func (s *Sheets) ExistingURLs(ctx context.Context) (map[string]bool, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet values: %w", err)
	}
	return urlSet(resp.Values), nil
}

// AppendArticles writes the articles whose URL is not yet on the sheet,
// inserting the header row first when the sheet is empty. It returns the
// number of rows appended. The existing set is extended in place so repeated
// calls within one run stay consistent.
func (s *Sheets) AppendArticles(ctx context.Context, articles []models.Article, existing map[string]bool) (int, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read sheet values: %w", err)
	}

	if len(resp.Values) == 0 {
		if err := s.append(ctx, [][]interface{}{headerValues()}); err != nil {
			return 0, fmt.Errorf("write header row: %w", err)
		}
		logrus.Info("Header row inserted")
	} else {
		// Re-read the URL column right before writing: another writer (or a
		// previous partially failed run) may have added rows since the run
		// started.
		for url := range urlSet(resp.Values) {
			existing[url] = true
		}
	}

	var rows [][]interface{}
	for _, a := range articles {
		if existing[a.URL] {
			continue
		}
		existing[a.URL] = true
		rows = append(rows, articleRow(a))
	}

	if len(rows) == 0 {
		logrus.Info("No new records to write")
		return 0, nil
	}

	if err := s.append(ctx, rows); err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{"count": len(rows)}).Info("Rows added to sheet")
	return len(rows), nil
}

func (s *Sheets) append(ctx context.Context, rows [][]interface{}) error {
	_, err := s.srv.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
