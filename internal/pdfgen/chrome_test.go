package pdfgen

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromeAvailable() bool {
	if os.Getenv("CHROME_PATH") != "" {
		return true
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestChromeEngine_Render(t *testing.T) {
	if testing.Short() || !chromeAvailable() {
		t.Skip("Chrome not available")
	}

	engine := &ChromeEngine{Timeout: time.Minute}
	data, err := engine.Render(context.Background(), sampleJob())
	require.NoError(t, err)

	pages, err := CountPages(data)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestChromeEngine_BadExecPath(t *testing.T) {
	engine := &ChromeEngine{ExecPath: "/nonexistent/chrome", Timeout: 5 * time.Second}
	_, err := engine.Render(context.Background(), sampleJob())

	var pdfErr *Error
	assert.ErrorAs(t, err, &pdfErr)
}
