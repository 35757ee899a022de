package main

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/iconversion"
	"github.com/esimov/iconversion/internal/config"
	"github.com/esimov/iconversion/utils"
)

func newTestCatalog(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "AppIcon.appiconset")
	require.NoError(t, os.Mkdir(dir, 0o755))
	for _, name := range []string{"Icon-40.png", "Icon-Marketing.png"} {
		img := imaging.New(64, 64, color.NRGBA{R: 30, G: 120, B: 200, A: 255})
		require.NoError(t, imaging.Save(img, filepath.Join(dir, name)))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	src := newTestCatalog(t)

	stdout, _, err := execute(t, src, "--text", "BETA", "--ignore", "Marketing", "--workers", "1")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Saved as: Icon-40.png")
	assert.Contains(t, stdout, "Skipped: Icon-Marketing.png")
	assert.Contains(t, stdout, "Versioned 1 icons, skipped 1")
	assert.DirExists(t, filepath.Join(filepath.Dir(src), "AppIcon-Versioned.appiconset"))
}

func TestRootCmdConfigFile(t *testing.T) {
	src := newTestCatalog(t)
	cfgPath := filepath.Join(t.TempDir(), "iconversion.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("appiconset_path: "+src+"\ntext: QA\n"), 0o644))

	stdout, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Versioned 2 icons, skipped 0")
}

func TestRootCmdErrors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, stderr, err := execute(t)
		require.Error(t, err)
		assert.Contains(t, stderr, "missing appiconset path")
	})

	t.Run("invalid band height", func(t *testing.T) {
		_, stderr, err := execute(t, newTestCatalog(t), "--band-height", "2.3")
		require.Error(t, err)
		assert.Contains(t, stderr, "Band height percentage is greater than 1")
	})

	t.Run("invalid blur mode", func(t *testing.T) {
		_, _, err := execute(t, newTestCatalog(t), "--blur-mode", "zoom")
		require.Error(t, err)
	})
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestIconPrinterPausesSpinner(t *testing.T) {
	var term syncBuffer
	spinner := utils.NewSpinner(&term, false)
	spinner.Start(spinnerMessage)

	printIcon := iconPrinter(&term, spinner, false)
	printIcon(iconversion.IconResult{Path: "/x/Icon-40.png"})
	printIcon(iconversion.IconResult{Path: "/x/Icon-Marketing.png", Skipped: true})
	spinner.Stop()

	var icons int
	for _, line := range strings.Split(term.String(), "\n") {
		if !strings.Contains(line, "Saved as:") && !strings.Contains(line, "Skipped:") {
			continue
		}
		icons++
		last := line[strings.LastIndex(line, "\r")+1:]
		assert.True(t, strings.HasPrefix(last, "Saved as:") || strings.HasPrefix(last, "Skipped:"), "%q", line)
		assert.NotContains(t, last, spinnerMessage)
	}
	assert.Equal(t, 2, icons)
}

func TestApplyFlagsOnlyWhenChanged(t *testing.T) {
	f := &flags{}
	cmd := &cobra.Command{Use: "test"}
	addFlags(cmd.Flags(), f)
	require.NoError(t, cmd.Flags().Parse([]string{"--blur-sigma", "0.2", "--margins", "0.1,0.2"}))

	cfg := config.Default()
	cfg.Text = "FROM-FILE"
	applyFlags(cmd, f, &cfg)

	assert.Equal(t, "FROM-FILE", cfg.Text)
	assert.Equal(t, 0.2, cfg.BandBlurSigmaPercentage)
	assert.Equal(t, []float64{0.1, 0.2}, cfg.TextMarginsPercentages)
	assert.Equal(t, 0.5, cfg.BandHeightPercentage)
}
