package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrfop/worktime/internal/cli/formatter"
	"github.com/mrfop/worktime/internal/service"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize and export recorded work",
	}

	cmd.AddCommand(
		newReportDaysCmd(app),
		newReportExportCmd(app),
	)

	return cmd
}

func newReportDaysCmd(app *App) *cobra.Command {
	var from, to *time.Time

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show per-day totals for sessions in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := app.Reports.DaysWithSegments(context.Background(), from, to)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				fmt.Println("No work recorded in this window.")
				return nil
			}
			fmt.Print(formatter.RenderDayTable(days))
			return nil
		},
	}

	cmd.Flags().Var(newTimeValue(&from), "from", "Window start, inclusive (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().Var(newTimeValue(&to), "to", "Window end, exclusive (RFC3339 or yyyy-mm-dd)")

	return cmd
}

func newReportExportCmd(app *App) *cobra.Command {
	var from, to *time.Time
	var outDir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a finalized report document for a closed window",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.ExportRequest{
				Location:     app.location(),
				ShowSegments: app.Config.ShowSegments,
			}
			if from != nil {
				req.From = *from
			}
			if to != nil {
				req.To = *to
			}

			doc, err := app.Exports.BuildDocument(context.Background(), req)
			if err != nil {
				return err
			}

			rendered := formatter.RenderReportDocument(doc)
			if stdout {
				fmt.Print(rendered)
				return nil
			}

			path := filepath.Join(outDir, app.Exports.Filename(req))
			if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("writing report file: %w", err)
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().Var(newTimeValue(&from), "from", "Window start, inclusive (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().Var(newTimeValue(&to), "to", "Window end, exclusive (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to write the report file into")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the document instead of writing a file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
