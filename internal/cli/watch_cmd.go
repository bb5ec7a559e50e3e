package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrfop/worktime/internal/cli/formatter"
	"github.com/mrfop/worktime/internal/domain"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of the running session and segment",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newWatchModel(app)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
}

type watchTickMsg time.Time

type watchStateMsg struct {
	session *domain.WorkSession
	segment *domain.WorkSegment
	err     error
}

type watchModel struct {
	app     *App
	spinner spinner.Model
	now     time.Time

	session *domain.WorkSession
	segment *domain.WorkSegment
	err     error
}

func newWatchModel(app *App) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StyleGreen
	return watchModel{app: app, spinner: s, now: time.Now().UTC()}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func loadWatchState(app *App) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := app.Sessions.Current(ctx)
		if err != nil {
			return watchStateMsg{err: err}
		}
		segment, err := app.Segments.Current(ctx)
		if err != nil {
			return watchStateMsg{err: err}
		}
		return watchStateMsg{session: session, segment: segment}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadWatchState(m.app), watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case watchTickMsg:
		m.now = time.Time(msg).UTC()
		return m, tea.Batch(loadWatchState(m.app), watchTick())

	case watchStateMsg:
		m.session = msg.session
		m.segment = msg.segment
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}

	loc := m.app.location()
	var content string
	if m.session == nil {
		content = formatter.Dim("No work session running.")
	} else {
		content = fmt.Sprintf("%s %s\nSession %s since %s",
			m.spinner.View(),
			formatter.StyleBold.Render(formatter.Elapsed(domain.DiffSeconds(&m.session.StartTime, &m.now))),
			formatter.TruncID(m.session.ID),
			formatter.HumanTimestamp(m.session.StartTime, loc))
		if m.segment != nil {
			content += fmt.Sprintf("\nSegment %s since %s (%s)",
				formatter.TruncID(m.segment.ID),
				formatter.HumanClock(m.segment.StartTime, loc),
				formatter.Elapsed(domain.DiffSeconds(&m.segment.StartTime, &m.now)))
			if m.segment.Comment != nil && *m.segment.Comment != "" {
				content += "\n" + formatter.Dim(*m.segment.Comment)
			}
		} else {
			content += "\n" + formatter.Dim("No segment running.")
		}
	}

	return formatter.RenderBox("worktime", content) + "\n" + formatter.Dim("q to quit") + "\n"
}
