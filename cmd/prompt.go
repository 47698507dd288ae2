package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/esg-research/internal/model"
	"github.com/sells-group/esg-research/internal/research"
)

var (
	promptChecklist string
	promptCompany   string
	promptSystem    bool
)

var promptCmd = &cobra.Command{
	Use:   "prompt <scope>",
	Short: "Print the research prompt for one scope",
	Long: "Renders the instructions an external agent uses to research one scope. " +
		"Values already recorded in --checklist are included as context.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := model.ParseScope(args[0])
		if err != nil {
			return eris.Wrap(err, "prompt")
		}

		s := model.NewResearchScopes()
		if promptChecklist != "" {
			format, err := formatFor(promptChecklist, "")
			if err != nil {
				return err
			}
			if s, err = readChecklist(cmd, promptChecklist, format); err != nil {
				return err
			}
		}

		company := promptCompany
		if company == "" && cfg != nil {
			company = cfg.Research.Company
		}

		rec, err := s.Record(scope)
		if err != nil {
			return err
		}
		text, err := research.BuildPrompt(company, scope, rec)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if promptSystem {
			_, _ = fmt.Fprintf(out, "%s\n\n", research.SystemText)
		}
		_, _ = fmt.Fprintln(out, text)
		return nil
	},
}

func init() {
	promptCmd.Flags().StringVar(&promptChecklist, "checklist", "", "checklist file with values already recorded")
	promptCmd.Flags().StringVar(&promptCompany, "company", "", "company under research (default from config)")
	promptCmd.Flags().BoolVar(&promptSystem, "system", false, "print the system prompt first")
	rootCmd.AddCommand(promptCmd)
}
