package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/image-prompt-kit/pkg/generator"
)

// isolate は実行環境の設定ファイルや環境変数の影響を受けないようにするヘルパー
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"PROMPTMAKER_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "PROMPTMAKER_MODEL", "PROMPTMAKER_OUTPUT", "PROMPTMAKER_LOG_LEVEL", "PROMPTMAKER_HISTORY_PATH", "PROMPTMAKER_THUMBNAIL_SIZE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("model", "", "")
	fs.String("history", "", "")
	fs.Int("thumbnail-size", 96, "")
	fs.String("log-level", "warn", "")
	fs.String("output", "text", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, generator.DefaultModel, cfg.Model)
	assert.Equal(t, 96, cfg.ThumbnailSize)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, "prompt_maker_history.json", filepath.Base(cfg.HistoryPath))
	assert.Empty(t, cfg.APIKey)
	assert.Error(t, cfg.RequireAPIKey())
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: from-file\noutput: yaml\nthumbnail_size: 64\nlog_level: debug\n"), 0o600))

	t.Run("設定ファイルが既定値より優先されるのだ", func(t *testing.T) {
		cfg, err := Load(path, testFlags())
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Model)
		assert.Equal(t, OutputYAML, cfg.Output)
		assert.Equal(t, 64, cfg.ThumbnailSize)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("環境変数が設定ファイルより優先されるのだ", func(t *testing.T) {
		t.Setenv("PROMPTMAKER_MODEL", "from-env")
		cfg, err := Load(path, testFlags())
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Model)
	})

	t.Run("フラグが環境変数より優先されるのだ", func(t *testing.T) {
		t.Setenv("PROMPTMAKER_MODEL", "from-env")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--model", "from-flag", "--output", "json"}))

		cfg, err := Load(path, fs)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Model)
		assert.Equal(t, OutputJSON, cfg.Output)
	})
}

func TestLoad_APIKeyFallback(t *testing.T) {
	isolate(t)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.APIKey)
	assert.NoError(t, cfg.RequireAPIKey())

	t.Setenv("PROMPTMAKER_API_KEY", "own-key")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "own-key", cfg.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Run("不正な出力形式", func(t *testing.T) {
		t.Setenv("PROMPTMAKER_OUTPUT", "xml")
		_, err := Load("", nil)
		assert.Error(t, err)
	})

	t.Run("不正なログレベル", func(t *testing.T) {
		t.Setenv("PROMPTMAKER_LOG_LEVEL", "verbose")
		_, err := Load("", nil)
		assert.Error(t, err)
	})

	t.Run("存在しない設定ファイル", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Model: "m", Output: OutputText, ThumbnailSize: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Model: "", Output: OutputText}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Model: "m", Output: OutputYAML}
	assert.NoError(t, cfg.Validate())
}
