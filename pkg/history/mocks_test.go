package history

import (
	"fmt"
	"sync"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

// mockStore は Store のテスト用モックなのだ。
type mockStore struct {
	mu        sync.Mutex
	saved     [][]domain.HistoryItem
	loadItems []domain.HistoryItem
	loadErr   error
	saveErr   error
	saveHook  func()
}

func (m *mockStore) Load() ([]domain.HistoryItem, error) {
	return m.loadItems, m.loadErr
}

func (m *mockStore) Save(items []domain.HistoryItem) error {
	if m.saveHook != nil {
		m.saveHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, items)
	return m.saveErr
}

func (m *mockStore) snapshots() [][]domain.HistoryItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

func item(n int) domain.HistoryItem {
	return domain.NewHistoryItem(
		fmt.Sprintf("id-%02d", n),
		domain.PromptResult{
			PromptSuite: domain.PromptSuite{MainPrompt: fmt.Sprintf("prompt %d", n), Tags: []string{"t"}},
			Timestamp:   int64(n),
		},
		"",
	)
}

func ids(items []domain.HistoryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
