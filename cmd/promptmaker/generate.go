package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/image-prompt-kit/pkg/generator"
	"github.com/shouni/image-prompt-kit/pkg/ingest"
)

var generateCmd = &cobra.Command{
	Use:   "generate <image|->",
	Short: "Generate a prompt suite from an image",
	Long: `Analyze an image and print the generated prompt suite.
Pass "-" to read the image from stdin. The result is prepended to the history.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("mime", "", "Media type of the image (default: detected from extension or content)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mediaType, _ := cmd.Flags().GetString("mime")

	var img *ingest.Ingested
	if args[0] == "-" {
		img, err = ingest.FromReader(cmd.InOrStdin(), mediaType)
	} else {
		img, err = ingest.FromFile(args[0], mediaType)
	}
	if err != nil {
		return describeIngestError(err)
	}

	gen, err := newGeminiGenerator(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, gen)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing image with %s...\n", gen.Model())
	result, err := s.ctrl.SubmitImage(cmd.Context(), img.Data, img.MediaType)
	if err != nil {
		if errors.Is(err, generator.ErrGeneration) {
			return fmt.Errorf("failed to generate prompt, please try again: %w", err)
		}
		return describeIngestError(err)
	}

	if err := renderResult(cmd.OutOrStdout(), cfg.Output, result); err != nil {
		return err
	}
	if v := s.ctrl.View(); len(v.History) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved to history as %s\n", v.History[0].ID)
	}
	return nil
}

// describeIngestError は入力検証エラーを利用者向けのメッセージにします。
func describeIngestError(err error) error {
	switch {
	case errors.Is(err, ingest.ErrInvalidMediaType):
		return fmt.Errorf("please provide an image file: %w", err)
	case errors.Is(err, ingest.ErrPayloadTooLarge):
		return fmt.Errorf("image too large, please use an image under %dMB: %w", ingest.MaxImageBytes/(1024*1024), err)
	}
	return err
}
