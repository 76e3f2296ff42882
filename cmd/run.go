package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/pipeline"
	"github.com/planforge/planforge/internal/shell"
	"github.com/planforge/planforge/internal/tracker"
)

var runDryRun bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <session-id>",
	Short: "Run the full pipeline over a session",
	Long: `Run the full pipeline over a session: generate, validate, submit.

Pending tasks that clear the quality gate are expanded into work items
with acceptance schemas, validated, and submitted to the issue tracker.
Failures are isolated per task: one bad task never aborts the batch.

With --dry-run, expansion and validation run but nothing is submitted
to the tracker.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		var creator pipeline.IssueCreator
		if !runDryRun {
			client := tracker.New(&shell.ShellCommander{}, config.Tracker.Binary)
			if !client.IsInstalled() {
				return fmt.Errorf("tracker binary '%s' not found in PATH; use --dry-run to skip submission", config.Tracker.Binary)
			}
			creator = client
		}

		var log io.Writer = io.Discard
		if verbose {
			log = os.Stderr
		}

		p := pipeline.New(s, creator, GetSchemasDir(), log)
		p.SkipSubmit = runDryRun
		session, err := p.Run(args[0])
		if err != nil {
			return err
		}

		fmt.Print(pipeline.Report(session))
		if session.Counters.Failed > 0 || session.Counters.Invalid > 0 {
			return fmt.Errorf("pipeline completed with %d invalid and %d failed item(s)",
				session.Counters.Invalid, session.Counters.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "expand and validate without submitting to the tracker")
}
