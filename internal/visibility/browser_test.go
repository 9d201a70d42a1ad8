package visibility

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/starwatch/internal/config"
	"github.com/yegors/starwatch/internal/failure"
	"github.com/yegors/starwatch/pkg/logger"
)

// findChrome returns the first Chrome-compatible binary on PATH or skips the test
func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome or Chromium binary on PATH")
	return ""
}

func testBrowserConfig(execPath string) config.BrowserConfig {
	return config.BrowserConfig{
		ExecPath:               execPath,
		Headless:               true,
		PageLoadTimeoutSeconds: 30,
	}
}

func TestNewBrowserMissingBinaryIsPageLoadFailure(t *testing.T) {
	_, err := NewBrowser(context.Background(), testBrowserConfig("/nonexistent/chrome"), logger.NewNop())
	require.Error(t, err)

	assert.Equal(t, failure.PageLoad, failure.KindOf(err))
	assert.True(t, strings.HasPrefix(failure.Message(err), "An unexpected error occurred: "), failure.Message(err))
}

func TestBrowserRendersClientSideContent(t *testing.T) {
	chrome := findChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><body>
<div id="static">served</div>
<script>document.body.insertAdjacentHTML("beforeend", '<div id="goodTimingsError">none</div>');</script>
</body></html>`))
	}))
	defer srv.Close()

	browser, err := NewBrowser(context.Background(), testBrowserConfig(chrome), logger.NewNop())
	require.NoError(t, err)
	defer browser.Close()

	document, err := browser.Render(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, document, `id="static"`)
	assert.Contains(t, document, `id="goodTimingsError"`)

	assert.NoError(t, browser.Close())
	assert.NoError(t, browser.Close())
}

func TestBrowserUnreachablePageIsPageLoadFailure(t *testing.T) {
	chrome := findChrome(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	browser, err := NewBrowser(context.Background(), testBrowserConfig(chrome), logger.NewNop())
	require.NoError(t, err)
	defer browser.Close()

	_, err = browser.Render(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, failure.PageLoad, failure.KindOf(err))
	assert.NotContains(t, failure.Message(err), "Network error")
}
