package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSource(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("  The quick brown fox jumps over the lazy dog.\n"), 0o644))

	content, err := NewFileSource(path).GetText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sample.txt", content.Title)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", content.Text)
	assert.Equal(t, 9, content.WordCount)
	assert.Equal(t, 44, content.CharCount)
	assert.False(t, content.FetchedAt.IsZero())
}

func TestFileSourceMissing(t *testing.T) {
	t.Parallel()
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.txt")).GetText(context.Background())
	assert.Error(t, err)
}

func TestFileSourceTooShort(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tiny.txt")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o644))

	_, err := NewFileSource(path).GetText(context.Background())
	assert.ErrorContains(t, err, "too short")
}

func TestReaderSource(t *testing.T) {
	t.Parallel()
	r := strings.NewReader("Text piped in via standard input.")
	content, err := NewReaderSource(r, "stdin").GetText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stdin", content.Title)
	assert.Equal(t, "Text piped in via standard input.", content.Text)
}

func TestWebSource(t *testing.T) {
	t.Parallel()
	const page = `<!DOCTYPE html>
<html>
<head><title>Test Page</title><style>body { color: red; }</style></head>
<body>
  <script>console.log("ignore me");</script>
  <h1>Welcome</h1>
  <p>This is the first paragraph of the page.</p>
  <p>And here is a second paragraph with more words.</p>
  <noscript>Enable JavaScript.</noscript>
</body>
</html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	src := NewWebSource(srv.URL, WebConfig{}, zap.NewNop())
	content, err := src.GetText(context.Background())
	require.NoError(t, err)

	assert.Equal(t, srv.URL, content.URL)
	assert.Equal(t, "Test Page", content.Title)
	assert.Contains(t, content.Text, "first paragraph")
	assert.NotContains(t, content.Text, "console.log")
	assert.NotContains(t, content.Text, "color: red")
	assert.NotContains(t, content.Text, "Enable JavaScript")
	assert.Greater(t, content.WordCount, 5)
}

func TestWebSourceRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>OK</title></head><body><p>Finally some real content here.</p></body></html>"))
	}))
	defer srv.Close()

	src := NewWebSource(srv.URL, WebConfig{MaxRetries: 3, RetryBackoff: time.Millisecond}, zap.NewNop())
	content, err := src.GetText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "OK", content.Title)
}

func TestWebSourceExhaustsRetries(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewWebSource(srv.URL, WebConfig{MaxRetries: 1, RetryBackoff: time.Millisecond}, zap.NewNop())
	_, err := src.GetText(context.Background())
	assert.Error(t, err)
}

func TestWebSourceRateLimitDelays(t *testing.T) {
	t.Parallel()
	const page = "<html><head><title>OK</title></head><body><p>Enough content to pass the length guard.</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	const delay = 200 * time.Millisecond
	src := NewWebSource(srv.URL, WebConfig{RateLimit: delay}, zap.NewNop())

	start := time.Now()
	_, err := src.GetText(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), delay, "per-host delay should hold the request slot")

	// Without a limit the same fetch is near-instant.
	fast := NewWebSource(srv.URL, WebConfig{}, zap.NewNop())
	start = time.Now()
	_, err = fast.GetText(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), delay)
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()
	in := "  Hello   world \n\n\n  second\tline  \n"
	assert.Equal(t, "Hello world\nsecond line", collapseWhitespace(in))
}
