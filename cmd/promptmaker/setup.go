package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/image-prompt-kit/pkg/adapters"
	"github.com/shouni/image-prompt-kit/pkg/app"
	"github.com/shouni/image-prompt-kit/pkg/config"
	"github.com/shouni/image-prompt-kit/pkg/domain"
	"github.com/shouni/image-prompt-kit/pkg/generator"
	"github.com/shouni/image-prompt-kit/pkg/history"
	"github.com/shouni/image-prompt-kit/pkg/imgutil"
)

// loadConfig は設定を読み込み、ロガーを初期化します。
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg, nil
}

// session はコマンド1回分のコントローラーと保存処理です。
type session struct {
	ctrl  *app.Controller
	saver *history.AsyncSaver
}

// Close は書き込み待ちの履歴を書き出します。
func (s *session) Close() {
	s.saver.Close()
}

// newSession は履歴を読み込んだコントローラーを用意します。
// gen が nil の場合は生成を行わないコマンド用に unavailableGenerator を使います。
func newSession(cfg *config.Config, gen generator.PromptGenerator) (*session, error) {
	store, err := history.NewFileStore(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		gen = unavailableGenerator{}
	}

	var opts []app.Option
	if size := cfg.ThumbnailSize; size > 0 {
		opts = append(opts, app.WithThumbnailer(func(data []byte) (string, error) {
			return imgutil.ThumbnailDataURL(data, size)
		}))
	}

	slog.Debug("履歴ファイルを使用します", "path", store.Path())

	saver := history.NewAsyncSaver(store)
	ctrl, err := app.NewController(gen, store, saver, opts...)
	if err != nil {
		saver.Close()
		return nil, err
	}
	ctrl.Load()
	return &session{ctrl: ctrl, saver: saver}, nil
}

func newGeminiGenerator(ctx context.Context, cfg *config.Config) (*generator.GeminiPromptGenerator, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	model, err := adapters.NewGeminiModel(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return generator.NewGeminiPromptGenerator(model, cfg.Model)
}

// unavailableGenerator は履歴操作だけを行うコマンドで使うジェネレーターです。
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, domain.ImageInput) (*domain.PromptResult, error) {
	return nil, &generator.GenerationError{Kind: generator.KindRemote, Err: fmt.Errorf("generation is not available in this command")}
}
