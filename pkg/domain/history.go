package domain

// HistoryItem は過去の生成結果の記録です。元画像は保持しません。
// JSON では PromptResult のフィールドが id, thumbnail と同じ階層に展開されます。
type HistoryItem struct {
	PromptResult `yaml:",inline"`
	ID           string `json:"id" yaml:"id"`
	Thumbnail    string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"` // data URL 形式の縮小画像
}

// NewHistoryItem は生成結果から履歴アイテムを作成します。
func NewHistoryItem(id string, result PromptResult, thumbnail string) HistoryItem {
	return HistoryItem{
		PromptResult: result,
		ID:           id,
		Thumbnail:    thumbnail,
	}
}
