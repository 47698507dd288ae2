package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/model"
)

var (
	initOut    string
	initFormat string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an empty research checklist",
	Long:  "Writes a checklist with all four research scopes and every attribute set to null.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFor(initOut, initFormat)
		if err != nil {
			return err
		}

		if initOut != "" && initOut != stdio && !initForce {
			if _, err := os.Stat(initOut); err == nil {
				return eris.Errorf("init: %s already exists (use --force to overwrite)", initOut)
			}
		}

		empty := model.NewResearchScopes()
		if err := writeChecklist(cmd, initOut, &empty, format); err != nil {
			return eris.Wrap(err, "init")
		}
		if initOut != "" && initOut != stdio {
			zap.L().Info("checklist written", zap.String("path", initOut), zap.String("format", string(format)))
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "out", "o", "", "output file (default stdout)")
	initCmd.Flags().StringVar(&initFormat, "format", "", "json or yaml (default from file extension or config)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
