package domain

import (
	"fmt"
	"strings"
)

const (
	// AttributeMin と AttributeMax は属性スコアの許容範囲（両端を含む）です。
	AttributeMin = 0
	AttributeMax = 100
)

// PromptVariations は詳細度や方向性の異なる5種類のプロンプトです。
type PromptVariations struct {
	Minimal   string `json:"minimal" yaml:"minimal" jsonschema_description:"A short, concise version of the prompt."`
	Balanced  string `json:"balanced" yaml:"balanced" jsonschema_description:"A balanced amount of detail."`
	Detailed  string `json:"detailed" yaml:"detailed" jsonschema_description:"Extremely detailed description of every element."`
	Cinematic string `json:"cinematic" yaml:"cinematic" jsonschema_description:"Focused on lighting, camera angles, and atmosphere."`
	Artistic  string `json:"artistic" yaml:"artistic" jsonschema_description:"Focused on style, medium, and artistic techniques."`
}

// PromptAttributes は画像の特徴を 0〜100 で数値化したスコアです。
// 合計値に制約はありません。
type PromptAttributes struct {
	Lighting   float64 `json:"lighting" yaml:"lighting" jsonschema:"minimum=0,maximum=100"`
	Complexity float64 `json:"complexity" yaml:"complexity" jsonschema:"minimum=0,maximum=100"`
	Vibrancy   float64 `json:"vibrancy" yaml:"vibrancy" jsonschema:"minimum=0,maximum=100"`
	Realism    float64 `json:"realism" yaml:"realism" jsonschema:"minimum=0,maximum=100"`
	Artistic   float64 `json:"artistic" yaml:"artistic" jsonschema:"minimum=0,maximum=100"`
}

// ModelAdvice は生成モデルごとに整形されたプロンプトです。
type ModelAdvice struct {
	SDXL       string `json:"sdxl" yaml:"sdxl"`
	Midjourney string `json:"midjourney" yaml:"midjourney"`
	Gemini     string `json:"gemini" yaml:"gemini"`
}

// PromptSuite はモデルが返す構造化データそのものです（タイムスタンプを含みません）。
type PromptSuite struct {
	MainPrompt     string           `json:"mainPrompt" yaml:"mainPrompt"`
	NegativePrompt string           `json:"negativePrompt" yaml:"negativePrompt"`
	Variations     PromptVariations `json:"variations" yaml:"variations"`
	Tags           []string         `json:"tags" yaml:"tags"` // 表示順を保持し、重複も許容
	Attributes     PromptAttributes `json:"attributes" yaml:"attributes"`
	ModelAdvice    ModelAdvice      `json:"modelAdvice" yaml:"modelAdvice"`
}

// PromptResult は1回の生成リクエストの成果物です。
// Timestamp はクライアントが受信時に付与するミリ秒単位の Unix 時刻です。
type PromptResult struct {
	PromptSuite `yaml:",inline"`
	Timestamp   int64 `json:"timestamp" yaml:"timestamp"`
}

// Validate は値の制約（空文字・範囲）を検証します。
// フィールドの有無や型の検証はデコード時に行われます。
func (s PromptSuite) Validate() error {
	if strings.TrimSpace(s.MainPrompt) == "" {
		return &FieldError{Path: "mainPrompt", Reason: ReasonEmpty}
	}
	if s.Tags == nil {
		return &FieldError{Path: "tags", Reason: ReasonMissing}
	}
	if err := s.Variations.Validate(); err != nil {
		return err
	}
	return s.Attributes.Validate()
}

// Validate は5種類すべてのバリエーションが空でないことを確認します。
func (v PromptVariations) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"minimal", v.Minimal},
		{"balanced", v.Balanced},
		{"detailed", v.Detailed},
		{"cinematic", v.Cinematic},
		{"artistic", v.Artistic},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &FieldError{Path: "variations." + f.name, Reason: ReasonEmpty}
		}
	}
	return nil
}

// Validate は各スコアが [AttributeMin, AttributeMax] に収まっているか確認します。
func (a PromptAttributes) Validate() error {
	scores := []struct {
		name  string
		value float64
	}{
		{"lighting", a.Lighting},
		{"complexity", a.Complexity},
		{"vibrancy", a.Vibrancy},
		{"realism", a.Realism},
		{"artistic", a.Artistic},
	}
	for _, s := range scores {
		if s.value < AttributeMin || s.value > AttributeMax {
			return &FieldError{
				Path:   "attributes." + s.name,
				Reason: ReasonOutOfRange,
				Detail: fmt.Sprintf("%g not in [%d, %d]", s.value, AttributeMin, AttributeMax),
			}
		}
	}
	return nil
}
