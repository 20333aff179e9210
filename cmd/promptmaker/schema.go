package main

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/shouni/image-prompt-kit/pkg/domain"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the prompt suite or the history file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		historyFile, _ := cmd.Flags().GetBool("history-file")

		schema := reflectSchema(&domain.PromptSuite{})
		if historyFile {
			schema = historySchema()
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	},
}

func init() {
	schemaCmd.Flags().Bool("history-file", false, "Print the schema of the persisted history instead")
}

// historySchema は履歴ファイル（HistoryItem の配列）のスキーマを返します。
// ExpandedStruct は構造体にしか使えないため、要素を展開してから配列で包みます。
func historySchema() *jsonschema.Schema {
	item := reflectSchema(&domain.HistoryItem{})
	version := item.Version
	item.Version, item.ID = "", ""
	return &jsonschema.Schema{
		Version: version,
		Type:    "array",
		Items:   item,
	}
}

func reflectSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(v)
}
