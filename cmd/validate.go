package main

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/model"
)

var (
	validateFormat    string
	validateNormalize bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check checklist files against the schema",
	Long: "Decodes each checklist and reports unknown attributes or non-text values. " +
		"With --normalize a single valid checklist is re-encoded with every attribute present.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateNormalize && len(args) != 1 {
			return eris.New("validate: --normalize takes exactly one file")
		}

		out := cmd.OutOrStdout()
		var failed int
		for _, path := range args {
			format, err := formatFor(path, validateFormat)
			if err != nil {
				return err
			}

			s, err := readChecklist(cmd, path, format)
			if err != nil {
				failed++
				var ve *model.ValidationError
				if errors.As(err, &ve) {
					_, _ = fmt.Fprintf(out, "FAIL %s: %s %s\n", path, ve.Reason(), ve.Key)
				} else {
					_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
				}
				zap.L().Debug("checklist rejected", zap.String("path", path), zap.Error(err))
				continue
			}

			if validateNormalize {
				return writeChecklist(cmd, stdio, &s, format)
			}
			filled := model.Fields().Len() - len(s.Missing())
			_, _ = fmt.Fprintf(out, "ok   %s (%d/%d filled)\n", path, filled, model.Fields().Len())
		}

		if failed > 0 {
			return eris.Errorf("validate: %d of %d checklists invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "json or yaml (default from file extension or config)")
	validateCmd.Flags().BoolVar(&validateNormalize, "normalize", false, "print the normalized checklist")
	rootCmd.AddCommand(validateCmd)
}
