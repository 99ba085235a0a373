package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insight-hub/newsintel-cli/internal/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate <articles.json>",
	Short: "Check an input document against the article contract",
	Long: `Validate loads a feature-annotated article document and reports every
contract violation per article. Degraded articles (for example a missing
relevance map) are reported but do not fail the command: the engine still
uses them for volume and sentiment trend counts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		articles, err := pipeline.LoadArticles(args[0])
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			return fmt.Errorf("no articles in %s", args[0])
		}

		flagged := 0
		unscoreable := 0
		for i := range articles {
			a := &articles[i]
			problems := a.Problems(reg)
			if len(problems) > 0 {
				flagged++
				label := a.ID
				if label == "" {
					label = fmt.Sprintf("article %d", i)
				}
				for _, p := range problems {
					fmt.Printf("⚠ %s: %s\n", label, p)
				}
			}
			if !a.Scoreable() {
				unscoreable++
			}
		}

		fmt.Printf("✓ %d articles checked, %d flagged\n", len(articles), flagged)
		if unscoreable > 0 {
			fmt.Printf("⚠ %d articles lack relevance data and will only count toward volume and sentiment trends\n", unscoreable)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
