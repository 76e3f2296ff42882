package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/bridge"
	"github.com/planforge/planforge/internal/shell"
	"github.com/planforge/planforge/models"
)

var (
	addFile     string
	addValidate bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <session-id>",
	Short: "Add a task document to a session",
	Long: `Add a task document to a planning session.

The document is JSON or YAML, chosen by file extension, and carries the
task identity plus the planning payload the review engine scores:
requirements, contracts, test plan, inversion analysis, failure modes,
research items, phases, and guards.

With --validate, the payload is additionally checked against the
configured JSON schema through the external validator before the task
is accepted.

Example:
  planforge add sprint-12 --file tasks/checkout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(addFile)
		if err != nil {
			return fmt.Errorf("read task document: %w", err)
		}

		task, err := models.ParseTaskDocument(data, addFile)
		if err != nil {
			return err
		}

		if addValidate {
			config := GetConfig()
			if config.Bridge.Schema == "" {
				return fmt.Errorf("--validate requires bridge.schema to be configured")
			}
			b := bridge.New(&shell.ShellCommander{}, config.Bridge.Command, config.Bridge.Schema)
			if !b.IsInstalled() {
				return fmt.Errorf("validator '%s' not found in PATH", config.Bridge.Command)
			}
			result := b.ValidateTask(task)
			if !result.Valid {
				for _, msg := range result.Errors {
					fmt.Fprintln(os.Stderr, "schema violation:", msg)
				}
				return fmt.Errorf("task document %s failed schema validation", addFile)
			}
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		session, err := s.Load(args[0])
		if err != nil {
			return err
		}
		if err := session.AddTask(task); err != nil {
			return err
		}
		if err := s.Save(session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		fmt.Printf("Added task '%s' to session '%s' (%d total)\n", task.ID, session.ID, session.Counters.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "task document to add (JSON or YAML)")
	addCmd.Flags().BoolVar(&addValidate, "validate", false, "check the payload against the configured JSON schema")
	_ = addCmd.MarkFlagRequired("file")
}
