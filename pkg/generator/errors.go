package generator

import (
	"errors"
	"fmt"
)

// ErrGeneration はすべての GenerationError に errors.Is でマッチします。
var ErrGeneration = errors.New("generation failed")

// ErrorKind は生成失敗の分類です。
type ErrorKind int

const (
	// KindRemote は通信・クォータ・ブロック等、リモート呼び出し自体の失敗です。
	KindRemote ErrorKind = iota
	// KindEmptyResponse はテキストを含まない応答です。
	KindEmptyResponse
	// KindSchemaViolation は宣言した形に一致しない応答です。
	KindSchemaViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindEmptyResponse:
		return "empty response"
	case KindSchemaViolation:
		return "schema violation"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// GenerationError は PromptGenerator.Generate の失敗を表します。
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("prompt generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

func newGenerationError(kind ErrorKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}
