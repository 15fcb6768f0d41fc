// Package interactive provides a full-screen heatmap browser. The
// dataset is loaded once up front; navigation only re-renders.
package interactive

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sdpower/ccheatmap/internal/heatmap"
	"github.com/sdpower/ccheatmap/internal/output"
	"github.com/sdpower/ccheatmap/internal/types"
)

type Options struct {
	Days       []types.DailyUsage
	Year       int
	StartMonth int
	NoColor    bool
}

type Viewer struct {
	options Options
}

func New(opts Options) *Viewer {
	if opts.StartMonth < 1 || opts.StartMonth > 12 {
		opts.StartMonth = 1
	}
	return &Viewer{options: opts}
}

func (v *Viewer) Start(ctx context.Context) error {
	p := tea.NewProgram(
		initialModel(v.options),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

type model struct {
	days       []types.DailyUsage
	year       int
	startMonth int
	renderer   *output.HeatmapRenderer
	titleStyle lipgloss.Style
	helpStyle  lipgloss.Style
}

func initialModel(opts Options) model {
	titleStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().Faint(true)
	if !opts.NoColor {
		titleStyle = titleStyle.Foreground(lipgloss.Color("205"))
	}

	return model{
		days:       opts.Days,
		year:       opts.Year,
		startMonth: opts.StartMonth,
		renderer:   output.NewHeatmapRenderer(opts.NoColor),
		titleStyle: titleStyle,
		helpStyle:  helpStyle,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.year--
		case "right", "l":
			m.year++
		}
	}
	return m, nil
}

func (m model) View() string {
	var grid types.ContributionGrid
	if m.startMonth == 1 {
		grid = heatmap.BuildYearGrid(m.year, m.days)
	} else {
		grid = heatmap.BuildRollingGrid(m.year, m.startMonth, m.days)
	}

	title := m.titleStyle.Render(fmt.Sprintf("Claude Code usage %d", m.year))
	help := m.helpStyle.Render("left/right: change year   q: quit")

	return "\n " + title + "\n\n" + m.renderer.Render(grid) + "\n " + help + "\n"
}
