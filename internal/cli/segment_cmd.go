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

func newSegmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Manage work segments inside the running session",
	}

	cmd.AddCommand(
		newSegmentStartCmd(app),
		newSegmentStopCmd(app),
		newSegmentStatusCmd(app),
		newSegmentListCmd(app),
		newSegmentPatchCmd(app),
		newSegmentRemoveCmd(app),
	)

	return cmd
}

func newSegmentStartCmd(app *App) *cobra.Command {
	var categoryID, activityID string
	var comment *string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work segment in the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			segment, err := app.Segments.Start(context.Background(), service.SegmentStart{
				CategoryID: categoryID,
				ActivityID: activityID,
				Comment:    comment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Started work segment %s at %s\n",
				formatter.TruncID(segment.ID),
				formatter.HumanTimestamp(segment.StartTime, app.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Category ID")
	cmd.Flags().StringVar(&activityID, "activity", "", "Activity ID")
	cmd.Flags().Var(newStringPtrValue(&comment), "comment", "Free-text comment")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("activity")

	return cmd
}

func newSegmentStopCmd(app *App) *cobra.Command {
	var categoryID, activityID, comment *string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running work segment",
		RunE: func(cmd *cobra.Command, args []string) error {
			segment, err := app.Segments.Stop(context.Background(), service.SegmentStop{
				CategoryID: categoryID,
				ActivityID: activityID,
				Comment:    comment,
			})
			if err != nil {
				return err
			}
			seconds := domain.DiffSeconds(&segment.StartTime, segment.EndTime)
			fmt.Printf("Stopped work segment %s after %s\n",
				formatter.TruncID(segment.ID), formatter.Elapsed(seconds))
			return nil
		},
	}

	cmd.Flags().Var(newStringPtrValue(&categoryID), "category", "Override the category ID")
	cmd.Flags().Var(newStringPtrValue(&activityID), "activity", "Override the activity ID")
	cmd.Flags().Var(newStringPtrValue(&comment), "comment", "Set the comment while stopping")

	return cmd
}

func newSegmentStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running work segment",
		RunE: func(cmd *cobra.Command, args []string) error {
			segment, err := app.Segments.Current(context.Background())
			if err != nil {
				return err
			}
			if segment == nil {
				fmt.Println(formatter.Dim("No work segment running."))
				return nil
			}

			loc := app.location()
			now := time.Now().UTC()
			fmt.Printf("%s %s since %s (%s)\n",
				formatter.Running("segment"),
				formatter.TruncID(segment.ID),
				formatter.HumanTimestamp(segment.StartTime, loc),
				formatter.Elapsed(domain.DiffSeconds(&segment.StartTime, &now)))
			if segment.Comment != nil && *segment.Comment != "" {
				fmt.Println(formatter.Dim(*segment.Comment))
			}
			return nil
		},
	}
}

func newSegmentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := app.Segments.FindAll(context.Background())
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				fmt.Println("No work segments found.")
				return nil
			}

			loc := app.location()
			headers := []string{"ID", "SESSION", "START", "END", "DURATION", "COMMENT"}
			rows := make([][]string, 0, len(segments))
			for _, s := range segments {
				end := formatter.Running("running")
				duration := formatter.Dim("-")
				if s.EndTime != nil {
					end = formatter.HumanTimestamp(*s.EndTime, loc)
					duration = formatter.Elapsed(domain.DiffSeconds(&s.StartTime, s.EndTime))
				}
				var comment string
				if s.Comment != nil {
					comment = formatter.TruncText(*s.Comment, 40)
				}
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					formatter.TruncID(s.WorkSessionID),
					formatter.HumanTimestamp(s.StartTime, loc),
					end,
					duration,
					comment,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newSegmentPatchCmd(app *App) *cobra.Command {
	var categoryID, activityID, comment *string
	var startTime, endTime *time.Time

	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Correct a recorded work segment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segment, err := app.Segments.Patch(context.Background(), args[0], service.SegmentPatch{
				CategoryID: categoryID,
				ActivityID: activityID,
				StartTime:  startTime,
				EndTime:    endTime,
				Comment:    comment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Updated work segment %s\n", formatter.TruncID(segment.ID))
			return nil
		},
	}

	cmd.Flags().Var(newStringPtrValue(&categoryID), "category", "New category ID")
	cmd.Flags().Var(newStringPtrValue(&activityID), "activity", "New activity ID")
	cmd.Flags().Var(newTimeValue(&startTime), "start", "New start time (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().Var(newTimeValue(&endTime), "end", "New end time (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().Var(newStringPtrValue(&comment), "comment", "New comment (empty clears it)")

	return cmd
}

func newSegmentRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a work segment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirmDestructive(
					fmt.Sprintf("Delete work segment %s?", formatter.TruncID(args[0])))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Segments.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted work segment %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
