package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rostis232/yahoonews2googlesheet/internal/models"
)

// ErrSkipArticle marks pages that loaded fine but do not carry a usable
// article (no id, no title or no body text).
var ErrSkipArticle = errors.New("article skipped")

const (
	maxBodyRunes    = 3000
	defaultProvider = "不明"
	defaultGenre    = "その他"
)

var (
	articleIDRegex     = regexp.MustCompile(`articles/([a-f0-9]+)`)
	titleSuffixRegex   = regexp.MustCompile(`（.*?） - Yahoo!ニュース$`)
	bodyClassRegex     = regexp.MustCompile(`article_body|ArticleBody`)
	providerClassRegex = regexp.MustCompile(`provider|sc-f06b9b1-0`)
)

// Article fetches one article page and extracts id, title, provider, publish
// time, genre and body. ErrSkipArticle is returned for pages without a usable
// article.
func (s *Scraper) Article(ctx context.Context, articleURL string) (models.Article, error) {
	id := extractArticleID(articleURL)
	if id == "" {
		return models.Article{}, fmt.Errorf("%w: no article id in %s", ErrSkipArticle, articleURL)
	}

	res, err := s.http.R().
		SetContext(ctx).
		Get(articleURL)
	if err != nil {
		return models.Article{}, fmt.Errorf("fetch article %s: %w", articleURL, err)
	}
	if res.StatusCode() != http.StatusOK {
		return models.Article{}, fmt.Errorf("fetch article %s: unexpected status code: %d", articleURL, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return models.Article{}, fmt.Errorf("parse article %s: %w", articleURL, err)
	}

	title := extractTitle(doc)
	if title == "" {
		return models.Article{}, fmt.Errorf("%w: no title at %s", ErrSkipArticle, articleURL)
	}

	body := extractBody(doc)
	if body == "" {
		return models.Article{}, fmt.Errorf("%w: no body at %s", ErrSkipArticle, articleURL)
	}

	return models.Article{
		ID:          id,
		Title:       title,
		Provider:    extractProvider(doc),
		PublishedAt: extractPublishedAt(doc),
		URL:         articleURL,
		Genre:       extractGenre(doc),
		Body:        body,
	}, nil
}

func extractArticleID(articleURL string) string {
	groups := articleIDRegex.FindStringSubmatch(articleURL)
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}

// extractTitle reads the og:title meta tag and removes the trailing
// `（情報源） - Yahoo!ニュース` suffix.
func extractTitle(doc *goquery.Document) string {
	content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content")
	if !ok {
		return ""
	}
	return strings.TrimSpace(titleSuffixRegex.ReplaceAllString(strings.TrimSpace(content), ""))
}

// extractProvider looks for a NewsArticle ld+json block whose publisher is
// not Yahoo! itself, falling back to the provider span.
func extractProvider(doc *goquery.Document) string {
	provider := defaultProvider

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload struct {
			Type      string `json:"@type"`
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
		}
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true
		}
		if payload.Type != "NewsArticle" {
			return true
		}
		name := strings.TrimSpace(payload.Publisher.Name)
		if name == "" || name == "Yahoo!ニュース" {
			return true
		}
		provider = name
		return false
	})

	if provider != defaultProvider {
		return provider
	}

	span := doc.Find("span").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return providerClassRegex.MatchString(class)
	}).First()
	if text := strings.TrimSpace(span.Text()); text != "" {
		provider = text
	}

	return provider
}

func extractPublishedAt(doc *goquery.Document) string {
	datetime, _ := doc.Find("time[datetime]").First().Attr("datetime")
	return strings.TrimSpace(datetime)
}

// extractGenre reads the breadcrumb navigation: the second item is the main
// genre, the third (when present) the sub-genre. ビジネス is folded into 経済
// to absorb naming drift between listing and article pages.
func extractGenre(doc *goquery.Document) string {
	genre := defaultGenre

	items := doc.Find(`nav[aria-label="パンくずリスト"] li`)
	if items.Length() > 1 {
		mainGenre := strings.TrimSpace(items.Eq(1).Text())
		if items.Length() > 2 {
			genre = mainGenre + "/" + strings.TrimSpace(items.Eq(2).Text())
		} else {
			genre = mainGenre + "総合"
		}
	}

	if strings.Contains(genre, "ビジネス") {
		genre = strings.ReplaceAll(genre, "ビジネス", "経済")
	}

	return genre
}

// extractBody joins the paragraph texts of the article body container,
// truncated to 3000 runes.
func extractBody(doc *goquery.Document) string {
	container := doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return bodyClassRegex.MatchString(class)
	}).First()
	if container.Length() == 0 {
		container = doc.Find(`div[data-testid="article-body"]`).First()
	}
	if container.Length() == 0 {
		return ""
	}

	container.Find("figure, aside, script, style, noscript, blockquote").Remove()

	var paragraphs []string
	container.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	body := strings.Join(paragraphs, "\n")
	if runes := []rune(body); len(runes) > maxBodyRunes {
		body = string(runes[:maxBodyRunes])
	}
	return body
}
