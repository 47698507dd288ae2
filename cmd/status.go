package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/esg-research/internal/model"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Show how much of a checklist is filled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFor(args[0], statusFormat)
		if err != nil {
			return err
		}
		s, err := readChecklist(cmd, args[0], format)
		if err != nil {
			return err
		}

		formatProgress(cmd.OutOrStdout(), s.Progress())
		formatMissing(cmd.OutOrStdout(), s.Missing())
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "json or yaml (default from file extension or config)")
	rootCmd.AddCommand(statusCmd)
}

// formatProgress writes a table of per-scope fill counts to out.
func formatProgress(out io.Writer, progress []model.ScopeProgress) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCOPE\tFILLED\tTOTAL\tCOMPLETE")
	_, _ = fmt.Fprintln(w, "-----\t------\t-----\t--------")

	var filled, total int
	for _, p := range progress {
		filled += p.Filled
		total += p.Total
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%t\n", p.Scope, p.Filled, p.Total, p.Complete())
	}
	_, _ = fmt.Fprintf(w, "total\t%d\t%d\t%t\n", filled, total, filled == total)
	_ = w.Flush()
}

// formatMissing lists the paths of absent attributes.
func formatMissing(out io.Writer, missing []model.FieldSpec) {
	if len(missing) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, "\nMissing:")
	for _, f := range missing {
		_, _ = fmt.Fprintf(out, "  %s\n", f.Path())
	}
}
