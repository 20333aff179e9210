package domain

// ImageInput は取り込み済みの画像です。
// リクエスト完了後は保持せず、履歴やストレージへ書き出してはいけません。
type ImageInput struct {
	Data      []byte
	MediaType string
}

// Size は画像のバイト数を返します。
func (i ImageInput) Size() int {
	return len(i.Data)
}
