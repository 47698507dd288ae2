package main

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/esg-research/internal/model"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [scope]",
	Short: "Print the JSON Schema of the checklist or one scope",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *jsonschema.Schema
		if len(args) == 1 {
			scope, err := model.ParseScope(args[0])
			if err != nil {
				return eris.Wrap(err, "schema")
			}
			s = model.ScopeSchema(scope)
		} else {
			s = model.JSONSchema()
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return eris.Wrap(err, "schema: encode")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
