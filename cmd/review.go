package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/review"
	"github.com/planforge/planforge/internal/ui"
	"github.com/planforge/planforge/models"
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <session-id> [task-id]",
	Short: "Score the tasks in a session",
	Long: `Run the three-part quality review over a session's tasks.

Each task is scored by the contract, test-design, and adversarial
reviewers. Scores start at 100 and deduct per finding; the aggregate is
the rounded mean of the three. An aggregate of 80 or more passes the
gate, 60 to 79 passes with a warning, below 60 is blocked.

With a task id, prints the full issue and recommendation breakdown for
that task only.`,
	Args: cobra.RangeArgs(1, 2),
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

		if len(args) == 2 {
			task, ok := session.Tasks[args[1]]
			if !ok {
				return fmt.Errorf("task '%s' not found in session '%s'", args[1], session.ID)
			}
			printTaskReview(task)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Task ID", "Title", "Contract", "Tests", "Adversarial", "Aggregate", "Verdict"})
		for _, task := range session.OrderedTasks() {
			r := review.ReviewTask(task)
			t.AppendRow(table.Row{
				task.ID,
				task.Title,
				ui.RenderGrade(r.Contract.Score, r.Contract.Grade),
				ui.RenderGrade(r.TestDesign.Score, r.TestDesign.Grade),
				ui.RenderGrade(r.Adversarial.Score, r.Adversarial.Grade),
				r.Aggregate,
				ui.VerdictStyle(string(r.Verdict)).Render(string(r.Verdict)),
			})
		}
		t.Render()
		return nil
	},
}

func printTaskReview(task models.Task) {
	r := review.ReviewTask(task)

	fmt.Println(ui.StyleSectionTitle.Render(fmt.Sprintf("Review: %s", task.Title)))
	fmt.Printf("Aggregate: %d (%s)\n\n", r.Aggregate, ui.VerdictStyle(string(r.Verdict)).Render(string(r.Verdict)))

	printScorer("Contract review", r.Contract)
	printScorer("Test design review", r.TestDesign)
	printScorer("Adversarial review", r.Adversarial)
}

func printScorer(name string, result review.Result) {
	fmt.Printf("%s: %s\n", ui.StyleTitle.Render(name), ui.RenderGrade(result.Score, result.Grade))
	if result.Ruthless {
		fmt.Println(ui.StyleError.Render("  ruthless: plan needs rework before expansion"))
	}
	for _, issue := range result.Issues {
		fmt.Println(ui.StyleWarning.Render("  - " + issue))
	}
	for _, rec := range result.Recommendations {
		fmt.Println(ui.StyleSubtle.Render("    fix: " + rec))
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
