package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all planning sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		ids, err := s.ListSessions()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			cmd.Println("No sessions found. Create one with 'planforge init <session-id>'.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Session", "Status", "Tasks", "Created", "Failed", "Updated"})
		for _, id := range ids {
			session, err := s.Load(id)
			if err != nil {
				t.AppendRow(table.Row{id, "unreadable", "", "", "", ""})
				continue
			}
			t.AppendRow(table.Row{
				session.ID,
				string(session.Status),
				session.Counters.Total,
				session.Counters.Created,
				session.Counters.Failed,
				session.UpdatedAt.Format("2006-01-02 15:04"),
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
