package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shouni/image-prompt-kit/pkg/config"
	"github.com/shouni/image-prompt-kit/pkg/domain"
	"github.com/shouni/image-prompt-kit/pkg/utils"
)

const barWidth = 20

// renderResult は生成結果を指定の形式で書き出します。
func renderResult(w io.Writer, format string, r *domain.PromptResult) error {
	switch format {
	case config.OutputJSON:
		return encodeJSON(w, r)
	case config.OutputYAML:
		return encodeYAML(w, r)
	}

	var b strings.Builder
	section(&b, "Main prompt", r.MainPrompt)
	section(&b, "Negative prompt", r.NegativePrompt)

	b.WriteString("Variations\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, v := range []struct{ name, text string }{
		{"minimal", r.Variations.Minimal},
		{"balanced", r.Variations.Balanced},
		{"detailed", r.Variations.Detailed},
		{"cinematic", r.Variations.Cinematic},
		{"artistic", r.Variations.Artistic},
	} {
		fmt.Fprintf(tw, "  %s\t%s\n", v.name, v.text)
	}
	tw.Flush()
	b.WriteString("\n")

	section(&b, "Tags", strings.Join(r.Tags, ", "))

	b.WriteString("Attributes\n")
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, a := range []struct {
		name  string
		score float64
	}{
		{"lighting", r.Attributes.Lighting},
		{"complexity", r.Attributes.Complexity},
		{"vibrancy", r.Attributes.Vibrancy},
		{"realism", r.Attributes.Realism},
		{"artistic", r.Attributes.Artistic},
	} {
		fmt.Fprintf(tw, "  %s\t%3.0f\t%s\n", a.name, a.score, bar(a.score))
	}
	tw.Flush()
	b.WriteString("\n")

	b.WriteString("Model advice\n")
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  SDXL\t%s\n", r.ModelAdvice.SDXL)
	fmt.Fprintf(tw, "  Midjourney\t%s\n", r.ModelAdvice.Midjourney)
	fmt.Fprintf(tw, "  Gemini\t%s\n", r.ModelAdvice.Gemini)
	tw.Flush()

	fmt.Fprintf(&b, "\nGenerated at %s\n", formatTimestamp(r.Timestamp))

	_, err := io.WriteString(w, b.String())
	return err
}

// renderHistory は履歴を新しい順に書き出します。
func renderHistory(w io.Writer, format string, items []domain.HistoryItem) error {
	if items == nil {
		items = []domain.HistoryItem{}
	}
	switch format {
	case config.OutputJSON:
		return encodeJSON(w, items)
	case config.OutputYAML:
		return encodeYAML(w, items)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No history yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGENERATED\tTHUMBNAIL\tMAIN PROMPT")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, formatTimestamp(item.Timestamp), describeThumbnail(item.Thumbnail), truncate(item.MainPrompt, 60))
	}
	return tw.Flush()
}

// describeThumbnail はサムネイルの形式とサイズを短く表します。
func describeThumbnail(dataURL string) string {
	if dataURL == "" {
		return "-"
	}
	mimeType, data, err := utils.ParseDataURL(dataURL)
	if err != nil {
		return "invalid"
	}
	return fmt.Sprintf("%s %.1fKB", strings.TrimPrefix(mimeType, "image/"), float64(len(data))/1024)
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "%s\n  %s\n\n", title, body)
}

func bar(score float64) string {
	n := int(score*barWidth/domain.AttributeMax + 0.5)
	n = max(0, min(barWidth, n))
	return strings.Repeat("#", n) + strings.Repeat(".", barWidth-n)
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
