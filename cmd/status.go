package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/ui"
	"github.com/planforge/planforge/models"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <session-id>",
	Short: "Show the state of a session",
	Long: `Show the state of a planning session: its counters, every task with
its pipeline status, and every derived work item with its tracker id or
failure reason.`,
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

		c := session.Counters
		fmt.Printf("Session %s: %s\n", ui.StyleTitle.Render(session.ID), string(session.Status))
		if session.Description != "" {
			fmt.Println(ui.StyleSubtle.Render(session.Description))
		}
		fmt.Printf("Tasks: %d total, %d generated | Work items: %d valid, %d invalid, %d created, %d failed\n\n",
			c.Total, c.Generated, c.Valid, c.Invalid, c.Created, c.Failed)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Task ID", "Title", "Status", "Work Item", "Tracker ID", "Error"})
		for _, task := range session.OrderedTasks() {
			row := table.Row{task.ID, task.Title, string(task.Status), task.WorkItemID, "", ""}
			if item, ok := session.WorkItems[task.WorkItemID]; ok {
				row[4] = item.ExternalID
				row[5] = itemError(item)
			}
			t.AppendRow(row)
		}
		t.Render()
		return nil
	},
}

func itemError(item models.WorkItem) string {
	if item.ValidationError != "" {
		return item.ValidationError
	}
	return item.CreationError
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
