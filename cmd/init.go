package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planforge/planforge/store"
)

var initDescription string

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <session-id>",
	Short: "Initialize a new planning session",
	Long: `Initialize a new planning session in the project state directory.

A session collects the tasks under review, the work items expanded from
them, and the running pipeline counters. Session ids become file names,
so they may not contain path separators.

Example:
  planforge init sprint-12 --description "Sprint 12 planning"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		session, err := s.Init(args[0], initDescription)
		if err != nil {
			if errors.Is(err, store.ErrSessionExists) {
				return fmt.Errorf("session '%s' already exists; use 'planforge reset %s' to start over", args[0], args[0])
			}
			return fmt.Errorf("initialize session: %w", err)
		}

		if err := os.MkdirAll(GetSchemasDir(), 0o755); err != nil {
			return fmt.Errorf("create schemas directory: %w", err)
		}

		fmt.Printf("Initialized session '%s'\n", session.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "description", "d", "", "session description")
}
