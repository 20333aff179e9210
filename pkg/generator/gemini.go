package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/image-prompt-kit/pkg/adapters"
	"github.com/shouni/image-prompt-kit/pkg/domain"
	"google.golang.org/genai"
)

// GeminiPromptGenerator は画像を Gemini に送り、プロンプト一式を生成するジェネレーターです。
type GeminiPromptGenerator struct {
	aiClient adapters.GenerativeModel
	model    string
	now      func() time.Time
}

// Option は GeminiPromptGenerator の任意設定です。
type Option func(*GeminiPromptGenerator)

// WithClock はタイムスタンプに使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(g *GeminiPromptGenerator) {
		g.now = now
	}
}

// NewGeminiPromptGenerator は依存関係を注入して GeminiPromptGenerator を初期化します。
// model が空の場合は DefaultModel を使います。
func NewGeminiPromptGenerator(aiClient adapters.GenerativeModel, model string, opts ...Option) (*GeminiPromptGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (adapters.GenerativeModel) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	g := &GeminiPromptGenerator{
		aiClient: aiClient,
		model:    model,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiPromptGenerator) Model() string {
	return g.model
}

// Generate は画像1枚につき1回だけリクエストを送り、検証済みの結果を返します。
// リトライは行いません。
func (g *GeminiPromptGenerator) Generate(ctx context.Context, in domain.ImageInput) (*domain.PromptResult, error) {
	if len(in.Data) == 0 {
		return nil, newGenerationError(KindRemote, fmt.Errorf("image data is required"))
	}

	slog.InfoContext(ctx, "Geminiにプロンプト生成をリクエストします", "model", g.model, "media_type", in.MediaType, "bytes", in.Size())

	resp, err := g.aiClient.GenerateContent(ctx, g.model, buildContents(in), buildConfig())
	if err != nil {
		return nil, newGenerationError(KindRemote, fmt.Errorf("Gemini生成エラー: %w", err))
	}

	text, err := adapters.ExtractText(ctx, resp)
	if err != nil {
		if errors.Is(err, adapters.ErrBlocked) {
			return nil, newGenerationError(KindRemote, err)
		}
		return nil, newGenerationError(KindEmptyResponse, err)
	}

	suite, err := DecodePromptSuite(text)
	if err != nil {
		slog.WarnContext(ctx, "応答がスキーマに一致しませんでした", "error", err, "bytes", len(text))
		return nil, newGenerationError(KindSchemaViolation, err)
	}

	// タイムスタンプはモデルではなくクライアントが付与する
	return &domain.PromptResult{
		PromptSuite: suite,
		Timestamp:   g.now().UnixMilli(),
	}, nil
}

func buildContents(in domain.ImageInput) []*genai.Content {
	parts := []*genai.Part{
		adapters.ToPart(in),
		genai.NewPartFromText(AnalysisInstruction),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func buildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  ResponseMIMEType,
		ResponseSchema:    ResponseSchema(),
	}
}
