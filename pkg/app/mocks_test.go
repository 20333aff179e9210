package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	mu           sync.Mutex
	calls        int
	generateFunc func(ctx context.Context, in domain.ImageInput) (*domain.PromptResult, error)
}

func (m *mockGenerator) Generate(ctx context.Context, in domain.ImageInput) (*domain.PromptResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(ctx, in)
	}
	r := sampleResult("generated")
	return &r, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockLoader struct {
	items []domain.HistoryItem
	err   error
}

func (m *mockLoader) Load() ([]domain.HistoryItem, error) {
	return m.items, m.err
}

type mockSaver struct {
	mu    sync.Mutex
	saved [][]domain.HistoryItem
}

func (m *mockSaver) Save(items []domain.HistoryItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, items)
}

func (m *mockSaver) last() []domain.HistoryItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

func (m *mockSaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func sampleResult(main string) domain.PromptResult {
	return domain.PromptResult{
		PromptSuite: domain.PromptSuite{
			MainPrompt:     main,
			NegativePrompt: "blurry",
			Variations: domain.PromptVariations{
				Minimal: "m", Balanced: "b", Detailed: "d", Cinematic: "c", Artistic: "a",
			},
			Tags:        []string{"tag"},
			Attributes:  domain.PromptAttributes{Lighting: 50, Complexity: 50, Vibrancy: 50, Realism: 50, Artistic: 50},
			ModelAdvice: domain.ModelAdvice{SDXL: "s", Midjourney: "mj --ar 1:1", Gemini: "g"},
		},
		Timestamp: 1700000000000,
	}
}

func historyItems(n int) []domain.HistoryItem {
	items := make([]domain.HistoryItem, n)
	for i := range items {
		items[i] = domain.NewHistoryItem(fmt.Sprintf("old-%02d", i), sampleResult(fmt.Sprintf("old %d", i)), "")
	}
	return items
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}
