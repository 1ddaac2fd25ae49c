package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rostis232/yahoonews2googlesheet/internal/models"
	"github.com/sirupsen/logrus"
)

const articleURLPrefix = "https://news.yahoo.co.jp/articles/"

// CategoryLinks fetches a category listing page and returns the article URLs
// found on it, query strings stripped, capped at the configured per-category
// maximum. Discovery order is preserved.
func (s *Scraper) CategoryLinks(ctx context.Context, category models.Category) ([]string, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(category.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", category.URL, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch listing %s: unexpected status code: %d", category.URL, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", category.URL, err)
	}

	links := collectArticleLinks(doc, s.maxPerCategory)

	logrus.WithFields(logrus.Fields{
		"category": category.Name,
		"count":    len(links),
	}).Debug("Collected article links from listing")

	return links, nil
}

func collectArticleLinks(doc *goquery.Document, max int) []string {
	var links []string
	seen := make(map[string]bool)

	doc.Find(`a[href*="/articles/"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || !strings.HasPrefix(href, articleURLPrefix) {
			return true
		}
		href, _, _ = strings.Cut(href, "?")
		if seen[href] {
			return true
		}
		seen[href] = true
		links = append(links, href)
		return len(links) < max
	})

	return links
}
