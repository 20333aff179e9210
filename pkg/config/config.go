package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shouni/image-prompt-kit/pkg/generator"
	"github.com/shouni/image-prompt-kit/pkg/history"
)

const (
	KeyAPIKey        = "api_key"
	KeyModel         = "model"
	KeyHistoryPath   = "history_path"
	KeyThumbnailSize = "thumbnail_size"
	KeyLogLevel      = "log_level"
	KeyOutput        = "output"

	envPrefix      = "PROMPTMAKER"
	configFileName = "promptmaker"
)

// 出力形式
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	APIKey        string
	Model         string
	HistoryPath   string
	ThumbnailSize int
	LogLevel      slog.Level
	Output        string
}

// Load は 既定値 < 設定ファイル < 環境変数 < フラグ の順で設定を読み込みます。
// configFile が空の場合はユーザー設定ディレクトリの promptmaker.yaml を探し、無ければ無視します。
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyModel, generator.DefaultModel)
	v.SetDefault(KeyThumbnailSize, 96)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyOutput, OutputText)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// Gemini SDK と同じ環境変数もフォールバックとして受け付ける
	if err := v.BindEnv(KeyAPIKey, envPrefix+"_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	if flags != nil {
		for key, name := range map[string]string{
			KeyModel:         "model",
			KeyHistoryPath:   "history",
			KeyThumbnailSize: "thumbnail-size",
			KeyLogLevel:      "log-level",
			KeyOutput:        "output",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		APIKey:        strings.TrimSpace(v.GetString(KeyAPIKey)),
		Model:         strings.TrimSpace(v.GetString(KeyModel)),
		HistoryPath:   v.GetString(KeyHistoryPath),
		ThumbnailSize: v.GetInt(KeyThumbnailSize),
		Output:        strings.ToLower(v.GetString(KeyOutput)),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	if cfg.HistoryPath == "" {
		path, err := history.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.HistoryPath = path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は値の組み合わせを検証します。API キーの有無は生成時にのみ確認します。
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid %s %q: want text, json or yaml", KeyOutput, c.Output)
	}
	if c.ThumbnailSize < 0 {
		return fmt.Errorf("invalid %s %d: must not be negative", KeyThumbnailSize, c.ThumbnailSize)
	}
	if c.Model == "" {
		return fmt.Errorf("%s is required", KeyModel)
	}
	return nil
}

// RequireAPIKey は API キーが設定されているか確認します。
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required: set %s_API_KEY or GEMINI_API_KEY", envPrefix)
	}
	return nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("設定ファイルを読み込めません: %w", err)
		}
		return nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "promptmaker"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("設定ファイルを読み込めません: %w", err)
	}
	slog.Debug("設定ファイルを読み込みました", "path", v.ConfigFileUsed())
	return nil
}
