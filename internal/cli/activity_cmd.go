package cli

import (
	"context"
	"fmt"

	"github.com/mrfop/worktime/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage work activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := app.Activities.Create(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created activity %s (%s)\n", activity.Name, formatter.TruncID(activity.ID))
			return nil
		},
	}
}

func newActivityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := app.Activities.FindAll(context.Background())
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				fmt.Println("No activities found.")
				return nil
			}

			headers := []string{"ID", "NAME"}
			rows := make([][]string, 0, len(activities))
			for _, a := range activities {
				rows = append(rows, []string{formatter.TruncID(a.ID), a.Name})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirmDestructive(
					fmt.Sprintf("Delete activity %s?", formatter.TruncID(args[0])))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Activities.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted activity %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
