package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/esg-research/internal/model"
)

var describeJSON bool

var describeCmd = &cobra.Command{
	Use:   "describe [scope]",
	Short: "List checklist attributes and their descriptions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scopes := model.Scopes
		if len(args) == 1 {
			scope, err := model.ParseScope(args[0])
			if err != nil {
				return eris.Wrap(err, "describe")
			}
			scopes = []model.Scope{scope}
		}

		if describeJSON {
			var fields []model.FieldSpec
			for _, s := range scopes {
				fields = append(fields, model.Fields().ByScope(s)...)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fields)
		}

		formatScopes(cmd.OutOrStdout(), scopes)
		return nil
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "print the field registry as JSON")
	rootCmd.AddCommand(describeCmd)
}

// formatScopes writes each scope's description followed by a table of its
// attributes.
func formatScopes(out io.Writer, scopes []model.Scope) {
	for i, s := range scopes {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "%s: %s\n", s, s.Description())

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "KEY\tDESCRIPTION")
		_, _ = fmt.Fprintln(w, "---\t-----------")
		for _, f := range model.Fields().ByScope(s) {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", f.Key, f.Description)
		}
		_ = w.Flush()
	}
}
