package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/shouni/image-prompt-kit/pkg/utils"
)

const (
	// ThumbnailQuality はサムネイル JPEG の品質です。
	ThumbnailQuality = 70
	// maxSourcePixels を超える画像はデコードしません（画像爆弾対策）。
	maxSourcePixels = 50_000_000
)

// Thumbnail は画像データ（PNG, GIF, JPEG, WebP）を長辺 maxEdge 以下の JPEG に縮小します。
// 元画像が十分小さい場合は拡大せず、そのまま JPEG に再エンコードします。
func Thumbnail(data []byte, maxEdge int) ([]byte, error) {
	if maxEdge <= 0 {
		return nil, fmt.Errorf("maxEdge must be positive: %d", maxEdge)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxSourcePixels {
		return nil, fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxEdge)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG は透過を持たないため、透明部分は白で埋める
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, dst, &jpeg.Options{Quality: ThumbnailQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ThumbnailDataURL は Thumbnail の結果を履歴保存用の data URL にします。
func ThumbnailDataURL(data []byte, maxEdge int) (string, error) {
	thumb, err := Thumbnail(data, maxEdge)
	if err != nil {
		return "", err
	}
	return utils.ToDataURL("image/jpeg", thumb), nil
}

// fitWithin はアスペクト比を保ったまま長辺を maxEdge に収めたサイズを返します。
func fitWithin(w, h, maxEdge int) (int, int) {
	if w <= maxEdge && h <= maxEdge {
		return w, h
	}
	if w >= h {
		nh := h * maxEdge / w
		return maxEdge, max(nh, 1)
	}
	nw := w * maxEdge / h
	return max(nw, 1), maxEdge
}
