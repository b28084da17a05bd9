package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagedata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("fills defaults without a file", func(t *testing.T) {
		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, config.EngineGoja, cfg.Engine)
		assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
		assert.Equal(t, config.DefaultConcurrency, cfg.Concurrency)
		assert.Equal(t, config.DefaultMaxNodes, cfg.MaxNodes)
	})

	t.Run("reads YAML file", func(t *testing.T) {
		path := writeConfig(t, `
engine: browser
timeout: 30s
concurrency: 2
patterns:
  - tag: cart
    expr: cart|basket
markers: [sku]
known_globals:
  __APP__: app
`)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, config.EngineBrowser, cfg.Engine)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 2, cfg.Concurrency)
		require.Len(t, cfg.Patterns, 1)
		assert.Equal(t, "cart", cfg.Patterns[0].Tag)
		assert.Equal(t, []string{"sku"}, cfg.Markers)
		assert.Equal(t, map[string]string{"__APP__": "app"}, cfg.KnownGlobals)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "engine: browser\nconcurrency: 2\n")
		t.Setenv("PAGEDATA_ENGINE", "goja")
		t.Setenv("PAGEDATA_TIMEOUT", "5s")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, config.EngineGoja, cfg.Engine)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 2, cfg.Concurrency)
	})

	t.Run("rejects unknown engine", func(t *testing.T) {
		path := writeConfig(t, "engine: lynx\n")

		_, err := config.Load(path)

		assert.Equal(t, pagedata.EINVALID, pagedata.ErrorCode(err))
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		path := writeConfig(t, "patterns:\n  - tag: bad\n    expr: \"(\"\n")

		_, err := config.Load(path)

		assert.Equal(t, pagedata.EINVALID, pagedata.ErrorCode(err))
	})

	t.Run("reports missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, pagedata.ENOTFOUND, pagedata.ErrorCode(err))
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		path := writeConfig(t, "engine: [unterminated\n")

		_, err := config.Load(path)

		assert.Equal(t, pagedata.EINVALID, pagedata.ErrorCode(err))
	})
}

func TestConfig_Classifier(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Patterns: []config.PatternConfig{{Tag: "cart", Expr: "cart|basket"}},
		Markers:  []string{"sku", "name"},
	}

	cl, err := cfg.Classifier()

	require.NoError(t, err)
	tag, ok := cl.MatchKey("shoppingBasket")
	require.True(t, ok)
	assert.Equal(t, "cart", tag)
	assert.Len(t, cl.Markers, len(pagedata.DefaultMarkers())+1)
	assert.True(t, cl.HasMarker(pagedata.NewRecord(pagedata.ShapeObject).Set("sku", pagedata.String("A1"))))
}

func TestConfig_KnownGlobalTable(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{KnownGlobals: map[string]string{"__Z__": "z", "__A__": "a"}}

	table := cfg.KnownGlobalTable()

	n := len(pagedata.DefaultKnownGlobals())
	require.Len(t, table, n+2)
	assert.Equal(t, pagedata.KnownGlobal{Global: "__A__", Key: "a"}, table[n])
	assert.Equal(t, pagedata.KnownGlobal{Global: "__Z__", Key: "z"}, table[n+1])
}
