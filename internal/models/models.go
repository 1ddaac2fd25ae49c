package models

// Article is one collected Yahoo! News article. Field order matches the
// column order of the spreadsheet row it becomes.
type Article struct {
	ID          string `db:"id"`
	CollectedAt string `db:"collected_at"`
	Title       string `db:"title"`
	Provider    string `db:"provider"`
	PublishedAt string `db:"published_at"`
	URL         string `db:"url"`
	Genre       string `db:"genre"`
	Body        string `db:"body"`
}

// Category is one Yahoo! News category listing page. Priority orders the
// scrape: lower values are scraped first.
type Category struct {
	Name     string
	URL      string
	Priority int
}

// DefaultCategories returns the listing pages collected every run.
func DefaultCategories() []Category {
	return []Category{
		{Name: "国内", URL: "https://news.yahoo.co.jp/categories/domestic", Priority: 0},
		{Name: "地域", URL: "https://news.yahoo.co.jp/categories/local", Priority: 0},
		{Name: "国際", URL: "https://news.yahoo.co.jp/categories/world", Priority: 1},
		{Name: "経済", URL: "https://news.yahoo.co.jp/categories/business", Priority: 1},
		{Name: "エンタメ", URL: "https://news.yahoo.co.jp/categories/entertainment", Priority: 1},
		{Name: "スポーツ", URL: "https://news.yahoo.co.jp/categories/sports", Priority: 1},
		{Name: "IT", URL: "https://news.yahoo.co.jp/categories/it", Priority: 1},
		{Name: "科学", URL: "https://news.yahoo.co.jp/categories/science", Priority: 1},
		{Name: "ライフ", URL: "https://news.yahoo.co.jp/categories/life", Priority: 1},
	}
}
