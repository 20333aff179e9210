package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/image-prompt-kit/pkg/domain"
	"google.golang.org/genai"
)

var (
	// ErrNoResponse は候補 (Candidate) を含まない応答の場合に返されます。
	ErrNoResponse = errors.New("Geminiからの有効な応答がありませんでした")
	// ErrEmptyText は候補にテキストが含まれない場合に返されます。
	ErrEmptyText = errors.New("テキストデータが見つかりませんでした")
	// ErrBlocked は安全フィルター等で生成が中断された場合に返されます。
	ErrBlocked = errors.New("生成がブロックされました")
)

// GenerativeModel は Gemini のコンテンツ生成 API を抽象化するインターフェースです。
// *genai.Models がそのまま満たします。
type GenerativeModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGeminiModel は API キーから Gemini API 用のクライアントを初期化します。
func NewGeminiModel(ctx context.Context, apiKey string) (GenerativeModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}

// ToPart は取り込み済みの画像を genai.Part (InlineData) に変換します。
func ToPart(in domain.ImageInput) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: in.MediaType,
			Data:     in.Data,
		},
	}
}

// ExtractText は Gemini のレスポンスから最初の候補のテキストを取り出します。
func ExtractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrNoResponse
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w (BlockReason: %s)", ErrBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoResponse
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	if text := strings.TrimSpace(sb.String()); text != "" {
		if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
			slog.WarnContext(ctx, "生成が途中で終了した可能性があります", "finish_reason", candidate.FinishReason)
		}
		return text, nil
	}

	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return "", fmt.Errorf("%w (FinishReason: %s)", ErrBlocked, candidate.FinishReason)
	}
	return "", ErrEmptyText
}
