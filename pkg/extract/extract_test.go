package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Port Strike Enters Third Week</title></head>
<body>
<article>
<h1>Port Strike Enters Third Week</h1>
<p>Dock workers extended their walkout on Monday as negotiations over
automation stalled for a third consecutive week, leaving container ships
anchored offshore and retailers warning of delayed shipments.</p>
<p>Union representatives said the two sides remain far apart on wage
increases, while port operators pointed to mounting losses across the
regional supply chain.</p>
</article>
</body>
</html>`

func TestExtractWithTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	e := NewReadabilityExtractor(5*time.Second, nil)

	result, err := e.ExtractWithTitle(context.Background(), server.URL+"/story")
	require.NoError(t, err)

	assert.Equal(t, "Port Strike Enters Third Week", result.Title)
	assert.Contains(t, result.Content, "Dock workers extended their walkout")
}

func TestExtractNon2xxReturnsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	e := NewReadabilityExtractor(5*time.Second, nil)

	result, err := e.ExtractWithTitle(context.Background(), server.URL+"/missing")

	assert.NoError(t, err)
	assert.Empty(t, result.Title)
	assert.Empty(t, result.Content)
}

func TestExtractUnreachableServerReturnsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	e := NewReadabilityExtractor(time.Second, nil)

	result, err := e.ExtractWithTitle(context.Background(), server.URL+"/gone")

	assert.NoError(t, err)
	assert.Empty(t, result.Content)
}

func TestExtractSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	e := NewReadabilityExtractor(5*time.Second, nil)

	_, err := e.ExtractWithTitle(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotUA, "globescope/"))
}
