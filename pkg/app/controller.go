package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/shouni/image-prompt-kit/pkg/domain"
	"github.com/shouni/image-prompt-kit/pkg/generator"
	"github.com/shouni/image-prompt-kit/pkg/history"
	"github.com/shouni/image-prompt-kit/pkg/ingest"
)

// ErrGenerationInProgress は生成中に新しい操作が要求された場合に返されます。
var ErrGenerationInProgress = errors.New("generation already in progress")

// State はコントローラーの状態です。
// 失敗 (Failed) は一時的な状態で、エラーを返した時点で Idle に戻ります。
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateResultReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateResultReady:
		return "result ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loader は起動時に履歴を読み込む先です。
type Loader interface {
	Load() ([]domain.HistoryItem, error)
}

// Saver は履歴の変更を永続化します。I/O を待たずに戻る実装を想定しています。
type Saver interface {
	Save(items []domain.HistoryItem)
}

// Thumbnailer は元画像から履歴用のサムネイル (data URL) を作成します。
type Thumbnailer func(data []byte) (string, error)

// View は表示層から観測できる状態です。
type View struct {
	State           State
	DisplayedResult *domain.PromptResult
	History         []domain.HistoryItem
	IsGenerating    bool
}

// Controller は表示中の結果と履歴を所有し、コマンドごとに状態遷移を行います。
type Controller struct {
	generator generator.PromptGenerator
	loader    Loader
	saver     Saver
	thumbnail Thumbnailer
	newID     func() string

	mu        sync.Mutex
	state     State
	displayed *domain.PromptResult
	log       *history.Log
}

// Option は Controller の任意設定です。
type Option func(*Controller)

// WithThumbnailer は履歴にサムネイルを保存するようにします。
func WithThumbnailer(fn Thumbnailer) Option {
	return func(c *Controller) {
		c.thumbnail = fn
	}
}

// WithIDGenerator は履歴 ID の生成方法を差し替えます。
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// NewController は依存関係を注入して Controller を初期化します。履歴は空の状態で始まるため、起動時に Load を呼んでください。
func NewController(gen generator.PromptGenerator, loader Loader, saver Saver, opts ...Option) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if saver == nil {
		return nil, fmt.Errorf("saver is required")
	}

	c := &Controller{
		generator: gen,
		loader:    loader,
		saver:     saver,
		newID:     uuid.NewString,
		state:     StateIdle,
		log:       history.NewLog(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load は保存済みの履歴を復元します。読み込みに失敗しても起動は継続し、空の履歴として扱います。
func (c *Controller) Load() {
	items, err := c.loader.Load()
	if err != nil {
		slog.Warn("履歴の読み込みに失敗しました。空の履歴で開始します", "error", err)
		items = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = history.NewLog(items)
}

// SubmitImage は画像を検証し、プロンプトを生成して履歴の先頭に追加します。
// 検証エラー (ingest.ErrInvalidMediaType, ingest.ErrPayloadTooLarge) の場合はリクエストを送らず、状態も変わりません。
// 生成に失敗した場合は表示中の結果は空のままで、履歴にも追加されません。
func (c *Controller) SubmitImage(ctx context.Context, data []byte, mediaType string) (*domain.PromptResult, error) {
	img, err := ingest.Ingest(data, mediaType)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.state == StateGenerating {
		c.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	c.state = StateGenerating
	c.displayed = nil
	c.mu.Unlock()

	result, err := c.generator.Generate(ctx, img.ImageInput)
	if err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		slog.WarnContext(ctx, "プロンプト生成に失敗しました", "error", err)
		return nil, err
	}

	item := domain.NewHistoryItem(c.newID(), cloneResult(*result), c.makeThumbnail(ctx, img.Data))

	c.mu.Lock()
	defer c.mu.Unlock()

	if evicted := c.log.Prepend(item); evicted != nil {
		slog.DebugContext(ctx, "古い履歴を削除しました", "id", evicted.ID)
	}
	c.displayed = result
	c.state = StateResultReady
	c.saver.Save(c.log.Items())

	out := cloneResult(*result)
	return &out, nil
}

// SelectHistoryItem は履歴の項目を表示中の結果にします。
// 履歴の並び順は変えず、新しい項目も追加せず、リモート呼び出しも行いません。
func (c *Controller) SelectHistoryItem(id string) (*domain.PromptResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateGenerating {
		return nil, ErrGenerationInProgress
	}
	item, err := c.log.Find(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}

	selected := cloneResult(item.PromptResult)
	c.displayed = &selected
	c.state = StateResultReady

	out := cloneResult(selected)
	return &out, nil
}

// ClearHistory は履歴をすべて削除して保存します。ユーザーの確認は呼び出し側で行ってください。
// 表示中の結果は変更しません。
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Clear()
	c.saver.Save(c.log.Items())
}

// View は現在の状態のスナップショットを返します。
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:        c.state,
		History:      c.log.Items(),
		IsGenerating: c.state == StateGenerating,
	}
	if c.displayed != nil {
		d := cloneResult(*c.displayed)
		v.DisplayedResult = &d
	}
	return v
}

func (c *Controller) makeThumbnail(ctx context.Context, data []byte) string {
	if c.thumbnail == nil {
		return ""
	}
	thumb, err := c.thumbnail(data)
	if err != nil {
		slog.DebugContext(ctx, "サムネイルを作成できませんでした", "error", err)
		return ""
	}
	return thumb
}

func cloneResult(r domain.PromptResult) domain.PromptResult {
	r.Tags = slices.Clone(r.Tags)
	return r
}
