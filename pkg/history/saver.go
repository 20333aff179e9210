package history

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

// AsyncSaver は Store への書き込みをバックグラウンドで行います。
// Save は I/O を待たずに戻り、未処理のスナップショットは最新のものだけが書き込まれます。
// 書き込みエラーはログに残すだけで呼び出し元には返しません。
type AsyncSaver struct {
	store Store

	mu      sync.Mutex
	pending []domain.HistoryItem
	dirty   bool
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewAsyncSaver は書き込み用の goroutine を起動します。終了時は Close を呼んでください。
func NewAsyncSaver(store Store) *AsyncSaver {
	s := &AsyncSaver{
		store: store,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

// Save は items のスナップショットを書き込み待ちにします。
func (s *AsyncSaver) Save(items []domain.HistoryItem) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		slog.Warn("クローズ済みのため履歴を保存できません", "items", len(items))
		return
	}
	s.pending = slices.Clone(items)
	s.dirty = true
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.mu.Unlock()
}

// Close は書き込み待ちのスナップショットを書き出してから goroutine を停止します。
func (s *AsyncSaver) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.wake)
	s.mu.Unlock()

	<-s.done
}

func (s *AsyncSaver) run() {
	defer close(s.done)
	for range s.wake {
		s.flush()
	}
	s.flush()
}

func (s *AsyncSaver) flush() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	items := s.pending
	s.pending, s.dirty = nil, false
	s.mu.Unlock()

	if err := s.store.Save(items); err != nil {
		slog.Warn("履歴の保存に失敗しました", "error", err, "items", len(items))
		return
	}
	slog.Debug("履歴を保存しました", "items", len(items))
}
