package generator

import "google.golang.org/genai"

// fieldSpec は応答 JSON の1フィールドの形です。
// ResponseSchema（モデルへの宣言）と DecodePromptSuite（受信時の検証）の両方がこの定義を使います。
type fieldSpec struct {
	name        string
	kind        jsonKind
	description string
	items       jsonKind    // kind が kindArray の場合の要素型
	fields      []fieldSpec // kind が kindObject の場合の子フィールド
}

var variationFields = []fieldSpec{
	{name: "minimal", kind: kindString, description: "A short, concise version of the prompt."},
	{name: "balanced", kind: kindString, description: "A balanced amount of detail."},
	{name: "detailed", kind: kindString, description: "Extremely detailed description of every element."},
	{name: "cinematic", kind: kindString, description: "Focused on lighting, camera angles, and atmosphere."},
	{name: "artistic", kind: kindString, description: "Focused on style, medium, and artistic techniques."},
}

var attributeFields = []fieldSpec{
	{name: "lighting", kind: kindNumber, description: "Score 0-100 for lighting intensity/importance."},
	{name: "complexity", kind: kindNumber, description: "Score 0-100 for visual complexity."},
	{name: "vibrancy", kind: kindNumber, description: "Score 0-100 for color vibrancy."},
	{name: "realism", kind: kindNumber, description: "Score 0-100 for photorealism level."},
	{name: "artistic", kind: kindNumber, description: "Score 0-100 for artistic stylization."},
}

var modelAdviceFields = []fieldSpec{
	{name: "sdxl", kind: kindString, description: "Prompt formatted specifically for Stable Diffusion XL with recommended settings."},
	{name: "midjourney", kind: kindString, description: "Prompt formatted for Midjourney including --ar (aspect ratio) and style parameters."},
	{name: "gemini", kind: kindString, description: "A natural language descriptive prompt optimized for Gemini generation."},
}

// promptSuiteShape は PromptResult からタイムスタンプを除いた形です。
var promptSuiteShape = []fieldSpec{
	{name: "mainPrompt", kind: kindString, description: "A comprehensive, high-quality prompt describing the image for recreation."},
	{name: "negativePrompt", kind: kindString, description: "A list of negative terms to avoid unwanted artifacts (e.g., blurry, low quality, distorted)."},
	{name: "variations", kind: kindObject, fields: variationFields},
	{name: "tags", kind: kindArray, items: kindString, description: "List of relevant style tags, subjects, and keywords."},
	{name: "attributes", kind: kindObject, fields: attributeFields},
	{name: "modelAdvice", kind: kindObject, fields: modelAdviceFields},
}

// ResponseSchema はモデルに宣言する出力スキーマを返します。
// すべてのフィールドが必須で、属性スコアは数値型です。
func ResponseSchema() *genai.Schema {
	return objectSchema(promptSuiteShape)
}

func objectSchema(fields []fieldSpec) *genai.Schema {
	s := &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       make(map[string]*genai.Schema, len(fields)),
		Required:         make([]string, 0, len(fields)),
		PropertyOrdering: make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		s.Properties[f.name] = fieldSchema(f)
		s.Required = append(s.Required, f.name)
		s.PropertyOrdering = append(s.PropertyOrdering, f.name)
	}
	return s
}

func fieldSchema(f fieldSpec) *genai.Schema {
	var s *genai.Schema
	switch f.kind {
	case kindObject:
		s = objectSchema(f.fields)
	case kindArray:
		s = &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: f.items.schemaType()}}
	default:
		s = &genai.Schema{Type: f.kind.schemaType()}
	}
	s.Description = f.description
	return s
}
