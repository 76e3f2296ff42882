package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset <session-id>",
	Short: "Delete a session and start over",
	Long: `Delete a session record outright. Emitted acceptance schemas are left
on disk. Resetting a session that does not exist is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("refusing to delete session '%s' without --force", args[0])
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := s.Reset(args[0]); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
		fmt.Printf("Session '%s' deleted\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "confirm deletion")
}
