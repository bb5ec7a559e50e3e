package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mrfop/worktime/internal/cli/formatter"
	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/service"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Start(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Started work session %s at %s\n",
				formatter.TruncID(session.ID),
				formatter.HumanTimestamp(session.StartTime, app.location()))
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Stop(context.Background())
			if err != nil {
				return err
			}
			seconds := domain.DiffSeconds(&session.StartTime, session.EndTime)
			fmt.Printf("Stopped work session %s after %s\n",
				formatter.TruncID(session.ID), formatter.Elapsed(seconds))
			return nil
		},
	}
}

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage work sessions",
	}

	// start/stop/status also exist as root-level shorthands.
	cmd.AddCommand(
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newSessionListCmd(app),
		newSessionPatchCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.FindAll(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No work sessions found.")
				return nil
			}

			loc := app.location()
			headers := []string{"ID", "START", "END", "DURATION"}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				end := formatter.Running("running")
				duration := formatter.Dim("-")
				if s.EndTime != nil {
					end = formatter.HumanTimestamp(*s.EndTime, loc)
					duration = formatter.Elapsed(domain.DiffSeconds(&s.StartTime, s.EndTime))
				}
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					formatter.HumanTimestamp(s.StartTime, loc),
					end,
					duration,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newSessionPatchCmd(app *App) *cobra.Command {
	var startTime, endTime *time.Time

	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Correct the recorded times of a work session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Sessions.Patch(context.Background(), args[0], service.SessionPatch{
				StartTime: startTime,
				EndTime:   endTime,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Updated work session %s\n", formatter.TruncID(session.ID))
			return nil
		},
	}

	cmd.Flags().Var(newTimeValue(&startTime), "start", "New start time (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().Var(newTimeValue(&endTime), "end", "New end time (RFC3339 or yyyy-mm-dd)")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a work session and all segments inside it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirmDestructive(
					fmt.Sprintf("Delete work session %s and its segments?", formatter.TruncID(args[0])))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Sessions.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted work session %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
