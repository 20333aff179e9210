package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSuite() PromptSuite {
	return PromptSuite{
		MainPrompt:     "a lighthouse on a cliff at dusk, oil painting",
		NegativePrompt: "blurry, low quality",
		Variations: PromptVariations{
			Minimal:   "lighthouse at dusk",
			Balanced:  "a lighthouse on a cliff at dusk",
			Detailed:  "a white lighthouse on a rugged cliff, dusk sky, crashing waves",
			Cinematic: "wide shot, golden hour rim light, volumetric fog",
			Artistic:  "impasto oil painting, visible brush strokes",
		},
		Tags:        []string{"lighthouse", "seascape", "seascape"},
		Attributes:  PromptAttributes{Lighting: 80, Complexity: 40, Vibrancy: 65, Realism: 30, Artistic: 90},
		ModelAdvice: ModelAdvice{SDXL: "lighthouse, steps 30", Midjourney: "lighthouse --ar 3:2", Gemini: "A lighthouse..."},
	}
}

func TestPromptSuite_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *PromptSuite)
		wantPath string
		reason   FieldReason
	}{
		{"正常系", func(s *PromptSuite) {}, "", ""},
		{"空のタグ配列は許容", func(s *PromptSuite) { s.Tags = []string{} }, "", ""},
		{"境界値 0 と 100 は許容", func(s *PromptSuite) { s.Attributes.Lighting = 0; s.Attributes.Realism = 100 }, "", ""},
		{"mainPrompt が空", func(s *PromptSuite) { s.MainPrompt = "  " }, "mainPrompt", ReasonEmpty},
		{"tags が nil", func(s *PromptSuite) { s.Tags = nil }, "tags", ReasonMissing},
		{"variations.cinematic が空", func(s *PromptSuite) { s.Variations.Cinematic = "" }, "variations.cinematic", ReasonEmpty},
		{"attributes.vibrancy が範囲外(上)", func(s *PromptSuite) { s.Attributes.Vibrancy = 100.5 }, "attributes.vibrancy", ReasonOutOfRange},
		{"attributes.complexity が範囲外(下)", func(s *PromptSuite) { s.Attributes.Complexity = -1 }, "attributes.complexity", ReasonOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSuite()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantPath == "" {
				assert.NoError(t, err)
				return
			}

			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected *FieldError, got %v", err)
			assert.Equal(t, tt.wantPath, fe.Path)
			assert.Equal(t, tt.reason, fe.Reason)
		})
	}
}

func TestPromptResult_JSONShape(t *testing.T) {
	result := PromptResult{PromptSuite: validSuite(), Timestamp: 1700000000123}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))

	// 埋め込みの PromptSuite はトップレベルに展開されるのだ
	for _, key := range []string{"mainPrompt", "negativePrompt", "variations", "tags", "attributes", "modelAdvice", "timestamp"} {
		assert.Contains(t, flat, key)
	}
	assert.NotContains(t, flat, "PromptSuite")
}

func TestFieldError_Error(t *testing.T) {
	err := &FieldError{Path: "attributes.realism", Reason: ReasonOutOfRange, Detail: "120 not in [0, 100]"}
	assert.Equal(t, `field "attributes.realism": out of range (120 not in [0, 100])`, err.Error())

	err = &FieldError{Path: "variations", Reason: ReasonMissing}
	assert.Equal(t, `field "variations": missing`, err.Error())
}
