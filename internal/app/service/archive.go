package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rostis232/yahoonews2googlesheet/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx/v3"
)

const archiveSheetName = "articles"

// XLSXArchive keeps a local monthly workbook with the same rows the sheet
// receives, one file per month.
type XLSXArchive struct {
	dir string
}

func NewXLSXArchive(dir string) *XLSXArchive {
	return &XLSXArchive{dir: dir}
}

// Archive appends the articles to the workbook of the given month, creating
// the file and the header row when missing.
func (x *XLSXArchive) Archive(articles []models.Article, month time.Time) error {
	if len(articles) == 0 {
		return nil
	}

	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	path := filepath.Join(x.dir, month.Format("2006-01")+".xlsx")

	workbook, sheet, err := openArchive(path)
	if err != nil {
		return err
	}
	defer sheet.Close()

	for _, a := range articles {
		row := sheet.AddRow()
		for _, value := range articleRow(a) {
			row.AddCell().SetString(fmt.Sprint(value))
		}
	}

	if err := workbook.Save(path); err != nil {
		return fmt.Errorf("save archive %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{"count": len(articles), "file": path}).Info("Articles archived")
	return nil
}

func openArchive(path string) (*xlsx.File, *xlsx.Sheet, error) {
	if _, err := os.Stat(path); err == nil {
		workbook, err := xlsx.OpenFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive %s: %w", path, err)
		}
		sheet, ok := workbook.Sheet[archiveSheetName]
		if !ok {
			return nil, nil, fmt.Errorf("archive %s: sheet %q missing", path, archiveSheetName)
		}
		return workbook, sheet, nil
	}

	workbook := xlsx.NewFile()
	sheet, err := workbook.AddSheet(archiveSheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("create archive sheet: %w", err)
	}
	header := sheet.AddRow()
	for _, h := range headerRow {
		header.AddCell().SetString(h)
	}
	return workbook, sheet, nil
}
