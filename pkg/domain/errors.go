package domain

import "fmt"

// FieldReason はスキーマ違反の種類です。
type FieldReason string

const (
	ReasonMissing    FieldReason = "missing"
	ReasonWrongType  FieldReason = "wrong type"
	ReasonEmpty      FieldReason = "empty"
	ReasonOutOfRange FieldReason = "out of range"
)

// FieldError はレスポンスのどのフィールドがなぜ不正かを表します。
type FieldError struct {
	Path   string
	Reason FieldReason
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("field %q: %s (%s)", e.Path, e.Reason, e.Detail)
	}
	return fmt.Sprintf("field %q: %s", e.Path, e.Reason)
}
