package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

// SlotName は履歴を保存するスロットの名前です。
const SlotName = "prompt_maker_history"

// Store は履歴の永続化先です。
type Store interface {
	Load() ([]domain.HistoryItem, error)
	Save(items []domain.HistoryItem) error
}

// FileStore は JSON ファイル1つを保存スロットとして使う Store です。
type FileStore struct {
	path string
}

// NewFileStore は path を保存先とする FileStore を作成します。
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return &FileStore{path: path}, nil
}

// DefaultPath はユーザー設定ディレクトリ配下の既定の保存先を返します。
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("ユーザー設定ディレクトリを取得できません: %w", err)
	}
	return filepath.Join(dir, "promptmaker", SlotName+".json"), nil
}

// Path は保存先のパスを返します。
func (s *FileStore) Path() string {
	return s.path
}

// Load は保存済みの履歴を読み込みます。ファイルが無い場合は空の履歴を返します。
func (s *FileStore) Load() ([]domain.HistoryItem, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var items []domain.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return items, nil
}

// Save は履歴全体を書き込みます。一時ファイルへの書き込み後に rename するため、途中で失敗しても既存の内容は壊れません。
func (s *FileStore) Save(items []domain.HistoryItem) error {
	if items == nil {
		items = []domain.HistoryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+SlotName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
