package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/model"
)

var (
	setFormat string
	setNull   bool
)

var setCmd = &cobra.Command{
	Use:   "set <file> <scope.key> [value]",
	Short: "Record one attribute in a checklist file",
	Long: "Sets an attribute addressed by dotted path, e.g. regulation.frameworks, and rewrites the file. " +
		"A missing file starts from the empty checklist. Use --null to mark the attribute absent.",
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, field := args[0], args[1]

		var value *string
		switch {
		case setNull && len(args) == 3:
			return eris.New("set: --null and a value are mutually exclusive")
		case setNull:
		case len(args) == 3:
			value = model.Text(args[2])
		default:
			return eris.New("set: a value is required (or --null)")
		}

		format, err := formatFor(path, setFormat)
		if err != nil {
			return err
		}

		s := model.NewResearchScopes()
		if _, err := os.Stat(path); err == nil {
			if s, err = readChecklist(cmd, path, format); err != nil {
				return err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return eris.Wrapf(err, "set: stat %s", path)
		}

		if err := s.Set(field, value); err != nil {
			return eris.Wrap(err, "set")
		}
		if err := writeChecklist(cmd, path, &s, format); err != nil {
			return err
		}

		zap.L().Info("checklist updated",
			zap.String("path", path),
			zap.String("field", field),
			zap.Bool("absent", value == nil),
			zap.Int("missing", len(s.Missing())),
		)
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&setFormat, "format", "", "json or yaml (default from file extension or config)")
	setCmd.Flags().BoolVar(&setNull, "null", false, "mark the attribute absent")
	rootCmd.AddCommand(setCmd)
}
