package history

import (
	"errors"
	"slices"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

// Capacity は履歴に保持する最大件数です。
const Capacity = 50

// ErrNotFound は指定した ID の履歴が存在しない場合に返されます。
var ErrNotFound = errors.New("history item not found")

// Log は新しい順に並んだ、上限付きの履歴です。
// 同時アクセスの保護は呼び出し側（app.Controller）が行います。
type Log struct {
	items []domain.HistoryItem
}

// NewLog は保存済みの履歴から Log を復元します。上限を超えた古い項目は捨てます。
func NewLog(items []domain.HistoryItem) *Log {
	if len(items) > Capacity {
		items = items[:Capacity]
	}
	return &Log{items: slices.Clone(items)}
}

// Prepend は先頭に項目を追加します。上限を超えた場合は末尾（最も古い項目）を追い出して返します。
func (l *Log) Prepend(item domain.HistoryItem) *domain.HistoryItem {
	l.items = slices.Insert(l.items, 0, item)
	if len(l.items) <= Capacity {
		return nil
	}
	evicted := l.items[Capacity]
	l.items = slices.Delete(l.items, Capacity, len(l.items))
	return &evicted
}

// Find は ID で項目を探します。順序は変更しません。
func (l *Log) Find(id string) (domain.HistoryItem, error) {
	i := slices.IndexFunc(l.items, func(it domain.HistoryItem) bool { return it.ID == id })
	if i < 0 {
		return domain.HistoryItem{}, ErrNotFound
	}
	return l.items[i], nil
}

// Items は履歴のコピーを新しい順で返します。
func (l *Log) Items() []domain.HistoryItem {
	return slices.Clone(l.items)
}

// Len は件数を返します。
func (l *Log) Len() int {
	return len(l.items)
}

// Clear はすべての項目を削除します。
func (l *Log) Clear() {
	l.items = nil
}
