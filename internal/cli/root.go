package cli

import (
	"time"

	"github.com/mrfop/worktime/internal/config"
	"github.com/mrfop/worktime/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the presentation settings loaded from configuration.
type App struct {
	Sessions   service.SessionService
	Segments   service.SegmentService
	Categories service.CategoryService
	Activities service.ActivityService
	Reports    service.ReportService
	Exports    service.ExportService

	Config config.Config
}

// location resolves the configured display timezone, falling back to
// UTC when the name does not load.
func (a *App) location() *time.Location {
	loc, err := time.LoadLocation(a.Config.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewRootCmd creates the top-level "worktime" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "worktime",
		Short: "Track work sessions and the segments inside them",
	}

	root.AddCommand(
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newSessionCmd(app),
		newSegmentCmd(app),
		newCategoryCmd(app),
		newActivityCmd(app),
		newReportCmd(app),
		newWatchCmd(app),
	)

	return root
}
