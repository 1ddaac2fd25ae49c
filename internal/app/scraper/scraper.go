package scraper

import (
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Config struct {
	// Timeout applies per request.
	Timeout time.Duration
	// RequestsPerSecond caps the request rate against news.yahoo.co.jp.
	RequestsPerSecond float64
	// Retries is the resty retry count for transient failures.
	Retries int
	// MaxPerCategory caps how many article pages are visited per listing.
	MaxPerCategory int
}

func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 2
	}
	if c.MaxPerCategory == 0 {
		c.MaxPerCategory = 15
	}
	return c
}

// Scraper fetches Yahoo! News listing and article pages.
type Scraper struct {
	http           *resty.Client
	maxPerCategory int
}

func New(cfg Config) (*Scraper, error) {
	cfg = cfg.withDefaults()

	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetTimeout(cfg.Timeout)
	httpClient.SetRetryCount(cfg.Retries)

	// max burst >= 2 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	return &Scraper{
		http:           httpClient,
		maxPerCategory: cfg.MaxPerCategory,
	}, nil
}
