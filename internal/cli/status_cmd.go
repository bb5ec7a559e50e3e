package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mrfop/worktime/internal/cli/formatter"
	"github.com/mrfop/worktime/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running session and segment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := app.Sessions.Current(ctx)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println(formatter.Dim("No work session running."))
				return nil
			}

			loc := app.location()
			now := time.Now().UTC()
			content := fmt.Sprintf("%s\nSession %s since %s (%s)",
				formatter.Running("session running"),
				formatter.TruncID(session.ID),
				formatter.HumanTimestamp(session.StartTime, loc),
				formatter.Elapsed(domain.DiffSeconds(&session.StartTime, &now)))

			segment, err := app.Segments.Current(ctx)
			if err != nil {
				return err
			}
			if segment != nil {
				line := fmt.Sprintf("Segment %s since %s (%s)",
					formatter.TruncID(segment.ID),
					formatter.HumanTimestamp(segment.StartTime, loc),
					formatter.Elapsed(domain.DiffSeconds(&segment.StartTime, &now)))
				if segment.Comment != nil && *segment.Comment != "" {
					line += "\n" + formatter.Dim(*segment.Comment)
				}
				content += "\n" + line
			} else {
				content += "\n" + formatter.Dim("No segment running.")
			}

			fmt.Println(formatter.RenderBox("worktime", content))
			return nil
		},
	}
}
