package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/model"
	"github.com/sells-group/esg-research/internal/research"
)

var (
	assembleBase   string
	assembleOut    string
	assembleFormat string
	assembleParts  = map[model.Scope]*string{}
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Build a checklist from per-scope result files",
	Long: "Loads one partial document per research scope (attribute keys at the top level) " +
		"concurrently and applies each onto --base, or onto the empty checklist. " +
		"Nothing is written when any scope fails.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("research"); err != nil {
			return err
		}
		format, err := formatFor(assembleOut, assembleFormat)
		if err != nil {
			return err
		}

		fillers := make(map[model.Scope]research.Filler)
		stdinReaders := 0
		if assembleBase == stdio {
			stdinReaders++
		}
		for scope, path := range assembleParts {
			if *path == "" {
				continue
			}
			if *path == stdio {
				stdinReaders++
			}
			fillers[scope] = fileFiller(cmd, *path)
		}
		if len(fillers) == 0 {
			return eris.New("assemble: at least one scope file is required")
		}
		if stdinReaders > 1 {
			return eris.New("assemble: only one input may be read from stdin")
		}

		s := model.NewResearchScopes()
		if assembleBase != "" {
			baseFormat := model.FormatFromPath(assembleBase, defaultFormat())
			if s, err = readChecklist(cmd, assembleBase, baseFormat); err != nil {
				return err
			}
		}

		if err := research.Populate(cmd.Context(), &s, fillers, scopeLimit()); err != nil {
			return eris.Wrap(err, "assemble")
		}
		if err := writeChecklist(cmd, assembleOut, &s, format); err != nil {
			return err
		}

		zap.L().Info("checklist assembled",
			zap.Int("scopes", len(fillers)),
			zap.Int("missing", len(s.Missing())),
		)
		return nil
	},
}

// fileFiller applies the partial document stored at path onto a scope record.
func fileFiller(cmd *cobra.Command, path string) research.Filler {
	return func(_ context.Context, rec model.Record) error {
		doc, err := readDocument(cmd, path, model.FormatFromPath(path, defaultFormat()))
		if err != nil {
			return err
		}
		return rec.Apply(doc)
	}
}

// scopeLimit is the configured fan-out for scope research.
func scopeLimit() int {
	if cfg == nil || cfg.Research.MaxConcurrentScopes <= 0 {
		return len(model.Scopes)
	}
	return cfg.Research.MaxConcurrentScopes
}

func init() {
	for _, scope := range model.Scopes {
		var path string
		assembleParts[scope] = &path
		assembleCmd.Flags().StringVar(&path, flagName(scope), "", "result file for "+string(scope))
	}
	assembleCmd.Flags().StringVar(&assembleBase, "base", "", "existing checklist to fill")
	assembleCmd.Flags().StringVarP(&assembleOut, "out", "o", "", "output file (default stdout)")
	assembleCmd.Flags().StringVar(&assembleFormat, "format", "", "json or yaml (default from file extension or config)")
	rootCmd.AddCommand(assembleCmd)
}

// flagName turns a scope into its flag spelling, e.g. industry-forces.
func flagName(scope model.Scope) string {
	return strings.ReplaceAll(string(scope), "_", "-")
}
