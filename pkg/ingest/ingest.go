package ingest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/image-prompt-kit/pkg/domain"
	"github.com/shouni/image-prompt-kit/pkg/utils"
)

// MaxImageBytes は受け付ける画像の最大サイズ (4 MiB) です。
const MaxImageBytes = 4 * 1024 * 1024

var (
	// ErrInvalidMediaType は MIME タイプが image/ で始まらない場合に返されます。
	ErrInvalidMediaType = errors.New("invalid media type")
	// ErrPayloadTooLarge は画像が MaxImageBytes を超える場合に返されます。
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Ingested は検証を通過した画像と、表示用のプレビューです。
type Ingested struct {
	domain.ImageInput
	// Preview はローカル表示専用の data URL です。
	Preview string
}

// Ingest は画像のバイト列と MIME タイプを検証します。
// 検証は MIME タイプ、サイズの順に行われます。
func Ingest(data []byte, mediaType string) (*Ingested, error) {
	mediaType = normalizeMediaType(mediaType)
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(data), MaxImageBytes)
	}

	slog.Debug("画像を受け付けました", "media_type", mediaType, "bytes", len(data))
	return &Ingested{
		ImageInput: domain.ImageInput{Data: data, MediaType: mediaType},
		Preview:    utils.ToDataURL(mediaType, data),
	}, nil
}

// FromReader は r から画像を読み込みます。
// mediaType が空の場合は内容から判定します。上限を超えた分は読み込みません。
func FromReader(r io.Reader, mediaType string) (*Ingested, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	return Ingest(data, mediaType)
}

// FromFile はファイルから画像を読み込みます。
// mediaType が空の場合は拡張子、次に内容から判定します。
func FromFile(path, mediaType string) (*Ingested, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("画像ファイルを開けません: %w", err)
	}
	defer f.Close()

	if mediaType == "" {
		mediaType = mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	}
	return FromReader(f, mediaType)
}

func normalizeMediaType(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	return mediaType
}
