package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "promptmaker",
	Short: "Reverse-engineer images into text-to-image prompts",
	Long: `promptmaker analyzes an image with Gemini and produces a prompt suite:
a main prompt, five variations, a negative prompt, SDXL / Midjourney / Gemini
formatted prompts and attribute scores. Results are kept in a local history
(newest first, up to 50 entries). Images themselves are never stored.

Examples:
  promptmaker generate photo.jpg
  cat photo.png | promptmaker generate - --output json
  promptmaker history list
  promptmaker history show <id>
  promptmaker history clear`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(schemaCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file (default: <user config dir>/promptmaker/promptmaker.yaml)")
	rootCmd.PersistentFlags().String("model", "", "Gemini model name")
	rootCmd.PersistentFlags().String("history", "", "History file path")
	rootCmd.PersistentFlags().Int("thumbnail-size", 96, "Longest edge of history thumbnails in px (0 disables)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json, yaml")
}
