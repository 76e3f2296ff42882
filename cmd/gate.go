package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/review"
	"github.com/planforge/planforge/internal/ui"
)

// gateCmd represents the gate command
var gateCmd = &cobra.Command{
	Use:   "gate <session-id>",
	Short: "Check every task in a session against the quality gate",
	Long: `Check every pending task in a session against the quality gate.

Exits non-zero if any task scores below the configured minimum
aggregate (review.minScore, default 60), listing each blocked task and
its top issues. Intended for CI: a session only proceeds to expansion
once the gate is clean.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		session, err := s.Load(args[0])
		if err != nil {
			return err
		}

		minScore := GetConfig().Review.MinScore

		var blocked int
		for _, task := range session.OrderedTasks() {
			r := review.ReviewTask(task)
			if r.Aggregate >= minScore {
				if verbose {
					fmt.Printf("%s: %d %s\n", task.ID, r.Aggregate, ui.VerdictStyle(string(r.Verdict)).Render(string(r.Verdict)))
				}
				continue
			}
			blocked++
			fmt.Fprintf(os.Stderr, "%s: %s scored %d (minimum %d)\n",
				ui.StyleError.Render("blocked"), task.ID, r.Aggregate, minScore)
			for _, issue := range topIssues(r, 3) {
				fmt.Fprintf(os.Stderr, "  - %s\n", issue)
			}
		}

		if blocked > 0 {
			return fmt.Errorf("%d task(s) below the quality gate", blocked)
		}
		fmt.Printf("All %d task(s) clear the quality gate\n", session.Counters.Total)
		return nil
	},
}

// topIssues gathers up to n issues across the three scorers, adversarial
// findings first, then contract, then test design.
func topIssues(r review.TaskReview, n int) []string {
	var issues []string
	for _, result := range []review.Result{r.Adversarial, r.Contract, r.TestDesign} {
		issues = append(issues, result.Issues...)
	}
	if len(issues) > n {
		issues = issues[:n]
	}
	return issues
}

func init() {
	rootCmd.AddCommand(gateCmd)
}
