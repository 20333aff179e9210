package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLPrefix = "data:"

// ToDataURL は、バイト列を base64 の data URL に変換します。
// プレビューや履歴サムネイルの表示用に使われます。
func ToDataURL(mimeType string, data []byte) string {
	return dataURLPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL は、base64 形式の data URL を MIME タイプとバイト列に分解します。
func ParseDataURL(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, dataURLPrefix), ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL has no payload")
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mimeType, data, nil
}
