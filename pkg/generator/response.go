package generator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shouni/image-prompt-kit/pkg/domain"
	"google.golang.org/genai"
)

type jsonKind int

const (
	kindNull jsonKind = iota
	kindString
	kindNumber
	kindBool
	kindArray
	kindObject
	kindInvalid
)

func (k jsonKind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "boolean"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	default:
		return "invalid"
	}
}

func (k jsonKind) schemaType() genai.Type {
	switch k {
	case kindString:
		return genai.TypeString
	case kindNumber:
		return genai.TypeNumber
	case kindBool:
		return genai.TypeBoolean
	case kindArray:
		return genai.TypeArray
	case kindObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

// kindOf は JSON 値の先頭バイトから型を判定します（値は構文的に正しい前提）。
func kindOf(raw json.RawMessage) jsonKind {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return kindInvalid
	}
	switch c := raw[0]; {
	case c == '"':
		return kindString
	case c == '{':
		return kindObject
	case c == '[':
		return kindArray
	case c == 't' || c == 'f':
		return kindBool
	case c == 'n':
		return kindNull
	case c == '-' || (c >= '0' && c <= '9'):
		return kindNumber
	default:
		return kindInvalid
	}
}

// DecodePromptSuite はモデルの出力テキストを厳密に検証して PromptSuite に変換します。
// 一部のフィールドだけを救出することはしません。
func DecodePromptSuite(text string) (domain.PromptSuite, error) {
	var suite domain.PromptSuite

	raw := json.RawMessage(text)
	if !json.Valid(raw) {
		return suite, fmt.Errorf("response is not valid JSON")
	}
	if err := checkShape(raw, "", promptSuiteShape); err != nil {
		return suite, err
	}
	if err := json.Unmarshal(raw, &suite); err != nil {
		return suite, fmt.Errorf("decode response: %w", err)
	}
	if err := suite.Validate(); err != nil {
		return suite, err
	}
	return suite, nil
}

func checkShape(raw json.RawMessage, path string, fields []fieldSpec) error {
	if k := kindOf(raw); k != kindObject {
		return wrongType(pathOr(path, "$"), kindObject, k)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("decode %s: %w", pathOr(path, "$"), err)
	}

	for _, f := range fields {
		p := join(path, f.name)
		v, ok := obj[f.name]
		if !ok {
			return &domain.FieldError{Path: p, Reason: domain.ReasonMissing}
		}
		k := kindOf(v)
		if k == kindNull {
			return &domain.FieldError{Path: p, Reason: domain.ReasonMissing, Detail: "null"}
		}
		if k != f.kind {
			return wrongType(p, f.kind, k)
		}

		switch f.kind {
		case kindObject:
			if err := checkShape(v, p, f.fields); err != nil {
				return err
			}
		case kindArray:
			var elems []json.RawMessage
			if err := json.Unmarshal(v, &elems); err != nil {
				return fmt.Errorf("decode %s: %w", p, err)
			}
			for i, e := range elems {
				if ek := kindOf(e); ek != f.items {
					return wrongType(fmt.Sprintf("%s[%d]", p, i), f.items, ek)
				}
			}
		}
	}
	return nil
}

func wrongType(path string, want, got jsonKind) error {
	return &domain.FieldError{
		Path:   path,
		Reason: domain.ReasonWrongType,
		Detail: fmt.Sprintf("want %s, got %s", want, got),
	}
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
