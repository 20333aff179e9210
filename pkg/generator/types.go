package generator

const (
	// DefaultModel は設定が無い場合に利用するモデル名です。
	DefaultModel = "gemini-3-flash-preview"

	// ResponseMIMEType はモデルに要求する出力形式です。
	ResponseMIMEType = "application/json"

	// SystemInstruction はモデルの役割を固定するシステムプロンプトです。
	SystemInstruction = "You are Prompt Maker, an advanced AI that reverse-engineers images into text prompts."

	// AnalysisInstruction は画像と一緒に送る解析指示です。
	AnalysisInstruction = `Analyze this image and generate a highly detailed prompt reproduction suite.
Act as an expert photographer and prompt engineer.
Identify the subject, medium, style, lighting, color palette, and composition.
Provide specific formatting for SDXL and Midjourney (calculate the aspect ratio from the image if possible).`
)
