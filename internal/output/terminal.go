// Package output renders contribution grids and stats reports for the
// terminal and as SVG files.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccheatmap/internal/heatmap"
	"github.com/sdpower/ccheatmap/internal/types"
)

// Ramp endpoints for the green scale. Levels 1-4 are blended between
// these in Luv space; level 0 gets a neutral gray.
const (
	emptyColor = "#ebedf0"
	lowColor   = "#9be9a8"
	highColor  = "#216e39"
)

// cellWidth is the printed width of one day cell.
const cellWidth = 2

type HeatmapRenderer struct {
	color  bool
	styles [5]lipgloss.Style
}

func NewHeatmapRenderer(noColor bool) *HeatmapRenderer {
	r := &HeatmapRenderer{
		color: !noColor && isatty.IsTerminal(os.Stdout.Fd()),
	}
	for level, hex := range LevelColors() {
		r.styles[level] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return r
}

// LevelColors returns the hex color for each intensity level 0-4.
func LevelColors() [5]string {
	low, _ := colorful.Hex(lowColor)
	high, _ := colorful.Hex(highColor)

	var colors [5]string
	colors[0] = emptyColor
	colors[1] = lowColor
	colors[2] = low.BlendLuv(high, 1.0/3.0).Clamped().Hex()
	colors[3] = low.BlendLuv(high, 2.0/3.0).Clamped().Hex()
	colors[4] = highColor
	return colors
}

// Render draws the grid as rows of colored cells: a month-label header,
// seven weekday rows, a legend, and a totals line.
func (r *HeatmapRenderer) Render(grid types.ContributionGrid) string {
	var out strings.Builder

	out.WriteString(r.renderMonthRow(grid))
	out.WriteString("\n")

	weekdayLabels := [7]string{"", "Mon", "", "Wed", "", "Fri", ""}
	for row := 0; row < 7; row++ {
		out.WriteString(fmt.Sprintf("%4s ", weekdayLabels[row]))
		for _, week := range grid.Weeks {
			out.WriteString(r.cell(week.Days[row].Level))
		}
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(r.renderLegend())
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("%s tokens in %s, peak day %s\n",
		FormatNumber(grid.TotalTokens), periodName(grid), FormatNumber(grid.PeakTokens)))

	return out.String()
}

func (r *HeatmapRenderer) cell(level int) string {
	const block = "■ " // ■ plus spacer
	if !r.color {
		// Monochrome fallback keeps intensity readable when piped.
		ramp := [5]string{"· ", "░ ", "▒ ", "▓ ", "█ "}
		return ramp[level]
	}
	return r.styles[level].Render(block)
}

func (r *HeatmapRenderer) renderMonthRow(grid types.ContributionGrid) string {
	labels := heatmap.MonthLabels(grid.StartMonth, len(grid.Weeks))

	var row strings.Builder
	row.WriteString("     ")
	col := 0
	for i := 0; i < len(labels); i++ {
		if labels[i] != "" && col <= i*cellWidth {
			for col < i*cellWidth {
				row.WriteString(" ")
				col++
			}
			row.WriteString(labels[i])
			col += len(labels[i])
		}
	}
	return row.String()
}

func (r *HeatmapRenderer) renderLegend() string {
	var out strings.Builder
	out.WriteString("     Less ")
	for level := 0; level <= 4; level++ {
		out.WriteString(r.cell(level))
	}
	out.WriteString("More")
	return out.String()
}

func periodName(grid types.ContributionGrid) string {
	if grid.StartMonth == 1 {
		return fmt.Sprintf("%d", grid.Year)
	}
	return fmt.Sprintf("%s %d to %s %d",
		monthName(grid.StartMonth), grid.Year,
		monthName(grid.StartMonth-1), grid.Year+1)
}

func monthName(month int) string {
	names := [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	return names[((month-1)%12+12)%12]
}

// FormatNumber renders n with comma separators.
func FormatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []rune
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, r)
	}
	return string(result)
}
