package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rostis232/yahoonews2googlesheet/internal/models"
)

func TestArticleRow(t *testing.T) {
	a := models.Article{
		ID:          "0a1b2c",
		CollectedAt: "2026/08/24 10:00",
		Title:       "タイトル",
		Provider:    "テスト通信",
		PublishedAt: "2026-08-24T09:30:00+09:00",
		URL:         "https://news.yahoo.co.jp/articles/0a1b2c",
		Genre:       "経済/経済総合",
		Body:        "本文",
	}

	got := articleRow(a)
	want := []interface{}{
		"0a1b2c",
		"2026/08/24 10:00",
		"タイトル",
		"テスト通信",
		"2026-08-24T09:30:00+09:00",
		"https://news.yahoo.co.jp/articles/0a1b2c",
		"経済/経済総合",
		"本文",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}

	if len(got) != len(headerRow) {
		t.Errorf("row has %d cells, header has %d", len(got), len(headerRow))
	}
}

func TestURLSet(t *testing.T) {
	values := [][]interface{}{
		{"ID", "収集時刻", "タイトル", "情報源", "掲載時刻", "URL", "ジャンル", "本文"},
		{"a", "t", "title", "p", "pt", "https://news.yahoo.co.jp/articles/a", "g", "b"},
		{"short", "row"},
		{"b", "t", "title", "p", "pt", "https://news.yahoo.co.jp/articles/b", "g", "b"},
	}

	got := urlSet(values)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if !got["https://news.yahoo.co.jp/articles/a"] || !got["https://news.yahoo.co.jp/articles/b"] {
		t.Errorf("missing expected URLs: %v", got)
	}
}

func TestURLSetEmpty(t *testing.T) {
	if got := urlSet(nil); len(got) != 0 {
		t.Errorf("urlSet(nil) = %v, want empty", got)
	}
}
