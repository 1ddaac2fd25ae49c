package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractArticleID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain article url",
			url:  "https://news.yahoo.co.jp/articles/0123456789abcdef0123456789abcdef01234567",
			want: "0123456789abcdef0123456789abcdef01234567",
		},
		{
			name: "uppercase hex is not an id",
			url:  "https://news.yahoo.co.jp/articles/ABCDEF",
			want: "",
		},
		{
			name: "category page",
			url:  "https://news.yahoo.co.jp/categories/domestic",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractArticleID(tt.url); got != tt.want {
				t.Errorf("extractArticleID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "suffix removed",
			html: `<html><head><meta property="og:title" content="首相、新経済対策を表明（共同通信） - Yahoo!ニュース"></head></html>`,
			want: "首相、新経済対策を表明",
		},
		{
			name: "no suffix",
			html: `<html><head><meta property="og:title" content="タイトルのみ"></head></html>`,
			want: "タイトルのみ",
		},
		{
			name: "missing meta",
			html: `<html><head><title>fallback title</title></head></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(mustDoc(t, tt.html)); got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractProvider(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "ld+json publisher",
			html: `<html><body>
				<script type="application/ld+json">{"@type":"NewsArticle","publisher":{"name":"共同通信"}}</script>
			</body></html>`,
			want: "共同通信",
		},
		{
			name: "yahoo publisher ignored, span fallback",
			html: `<html><body>
				<script type="application/ld+json">{"@type":"NewsArticle","publisher":{"name":"Yahoo!ニュース"}}</script>
				<span class="sc-f06b9b1-0 hXpxzv">時事通信</span>
			</body></html>`,
			want: "時事通信",
		},
		{
			name: "broken json skipped",
			html: `<html><body>
				<script type="application/ld+json">{not json</script>
				<script type="application/ld+json">{"@type":"NewsArticle","publisher":{"name":"読売新聞"}}</script>
			</body></html>`,
			want: "読売新聞",
		},
		{
			name: "nothing found",
			html: `<html><body><p>本文</p></body></html>`,
			want: "不明",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractProvider(mustDoc(t, tt.html)); got != tt.want {
				t.Errorf("extractProvider() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPublishedAt(t *testing.T) {
	html := `<html><body><time datetime="2026-08-24T09:00:00+09:00">8/24(月) 9:00</time></body></html>`
	if got := extractPublishedAt(mustDoc(t, html)); got != "2026-08-24T09:00:00+09:00" {
		t.Errorf("extractPublishedAt() = %q", got)
	}
	if got := extractPublishedAt(mustDoc(t, `<html><body></body></html>`)); got != "" {
		t.Errorf("extractPublishedAt() on empty doc = %q, want empty", got)
	}
}

func TestExtractGenre(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "main and sub genre",
			html: `<html><body><nav aria-label="パンくずリスト"><ol>
				<li>ホーム</li><li>経済</li><li>経済総合</li>
			</ol></nav></body></html>`,
			want: "経済/経済総合",
		},
		{
			name: "main genre only",
			html: `<html><body><nav aria-label="パンくずリスト"><ol>
				<li>ホーム</li><li>国内</li>
			</ol></nav></body></html>`,
			want: "国内総合",
		},
		{
			name: "business normalized",
			html: `<html><body><nav aria-label="パンくずリスト"><ol>
				<li>ホーム</li><li>ビジネス</li>
			</ol></nav></body></html>`,
			want: "経済総合",
		},
		{
			name: "no breadcrumb",
			html: `<html><body><p>本文</p></body></html>`,
			want: "その他",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractGenre(mustDoc(t, tt.html)); got != tt.want {
				t.Errorf("extractGenre() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBody(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs joined, noise removed",
			html: `<html><body><div class="article_body">
				<p>一段落目。</p>
				<figure><p>画像の説明</p></figure>
				<blockquote><p>引用</p></blockquote>
				<p>  二段落目。  </p>
				<p></p>
			</div></body></html>`,
			want: "一段落目。\n二段落目。",
		},
		{
			name: "data-testid fallback",
			html: `<html><body><div data-testid="article-body"><p>本文です。</p></div></body></html>`,
			want: "本文です。",
		},
		{
			name: "no container",
			html: `<html><body><p>どこにも属さない段落</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractBody(mustDoc(t, tt.html)); got != tt.want {
				t.Errorf("extractBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBodyTruncation(t *testing.T) {
	long := strings.Repeat("あ", maxBodyRunes+500)
	html := `<html><body><div class="sc-1 ArticleBody"><p>` + long + `</p></div></body></html>`

	got := extractBody(mustDoc(t, html))
	if runes := []rune(got); len(runes) != maxBodyRunes {
		t.Errorf("body length = %d runes, want %d", len(runes), maxBodyRunes)
	}
}
