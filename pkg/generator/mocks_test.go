package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockAIClient は adapters.GenerativeModel のテスト用モックなのだ。
type mockAIClient struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	generateFunc func(model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	if m.generateFunc != nil {
		return m.generateFunc(model, contents, config)
	}
	return textResponse(validResponseJSON), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

const validResponseJSON = `{
  "mainPrompt": "a red fox sitting in fresh snow, soft morning light, telephoto, shallow depth of field",
  "negativePrompt": "blurry, low quality, distorted, extra limbs",
  "variations": {
    "minimal": "red fox in snow",
    "balanced": "a red fox sitting in snow, morning light",
    "detailed": "a red fox with frost on its whiskers sitting in fresh powder snow, pine forest background",
    "cinematic": "low angle, backlit rim light, breath vapor, anamorphic bokeh",
    "artistic": "wildlife photography, muted palette, painterly texture"
  },
  "tags": ["fox", "snow", "wildlife", "snow"],
  "attributes": {"lighting": 72, "complexity": 35.5, "vibrancy": 60, "realism": 95, "artistic": 40},
  "modelAdvice": {
    "sdxl": "red fox, snow, morning light, 85mm, Steps: 30, CFG: 7",
    "midjourney": "red fox sitting in snow, soft morning light --ar 3:2 --style raw",
    "gemini": "A photorealistic image of a red fox sitting in fresh snow under soft morning light."
  }
}`
