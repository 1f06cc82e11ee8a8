package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const defaultUserAgent = "lexiscan/1.0 (+https://github.com/lexiscan/lexiscan)"

// WebConfig controls the web source's collector behavior.
type WebConfig struct {
	UserAgent     string
	RespectRobots bool
	Timeout       time.Duration
	MaxRetries    int
	RetryBackoff  time.Duration
	// RateLimit is the politeness delay applied per host. Zero disables it.
	RateLimit time.Duration
}

// WebSource fetches a page with Colly and extracts its readable text.
type WebSource struct {
	url    string
	cfg    WebConfig
	logger *zap.Logger
}

// NewWebSource builds a source for one URL.
func NewWebSource(url string, cfg WebConfig, logger *zap.Logger) *WebSource {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSource{url: url, cfg: cfg, logger: logger}
}

// GetText fetches the page, retrying transient failures with backoff, and
// extracts title and body text.
func (s *WebSource) GetText(ctx context.Context) (*Content, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * s.cfg.RetryBackoff
			s.logger.Debug("retrying fetch",
				zap.String("url", s.url),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch canceled: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
		body, err := s.fetch(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		return s.extract(body)
	}
	return nil, fmt.Errorf("fetch %s: %w", s.url, lastErr)
}

func (s *WebSource) fetch(ctx context.Context) ([]byte, error) {
	collector := colly.NewCollector(colly.Async(false))
	collector.UserAgent = s.cfg.UserAgent
	collector.IgnoreRobotsTxt = !s.cfg.RespectRobots
	collector.SetRequestTimeout(s.cfg.Timeout)
	if s.cfg.RateLimit > 0 {
		err := collector.Limit(&colly.LimitRule{DomainGlob: "*", Delay: s.cfg.RateLimit})
		if err != nil {
			return nil, fmt.Errorf("configure rate limit: %w", err)
		}
	}

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(s.url)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("visit failed: %w", err)
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("response failed: %w", fetchErr)
		}
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return body, nil
}

// extract strips non-content markup and returns the page title and text.
func (s *WebSource) extract(body []byte) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, iframe, svg").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	var b strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
		b.WriteString("\n")
	})
	text := collapseWhitespace(b.String())

	content, err := newContent(s.url, title, text)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", s.url, err)
	}
	return content, nil
}

// collapseWhitespace squeezes runs of whitespace, keeping paragraph breaks.
func collapseWhitespace(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
