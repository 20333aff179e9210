package generator

import (
	"context"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

// PromptGenerator はビジネスロジック層が利用する統合窓口です。
type PromptGenerator interface {
	// Generate は画像を解析し、タイムスタンプ付きの PromptResult を返します。
	// 失敗時は常に *GenerationError を返します。
	Generate(ctx context.Context, in domain.ImageInput) (*domain.PromptResult, error)
}
