package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/sdpower/ccheatmap/internal/heatmap"
	"github.com/sdpower/ccheatmap/internal/types"
)

// SVG layout constants, in pixels.
const (
	svgCellSize  = 11
	svgCellGap   = 2
	svgLeftPad   = 30 // weekday labels
	svgTopPad    = 20 // month labels
	svgBottomPad = 28 // legend + totals
)

type SVGRenderer struct{}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Render produces a standalone SVG document for the grid.
func (r *SVGRenderer) Render(grid types.ContributionGrid) string {
	colors := LevelColors()
	step := svgCellSize + svgCellGap

	width := svgLeftPad + len(grid.Weeks)*step
	height := svgTopPad + 7*step + svgBottomPad

	var out strings.Builder
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	out.WriteString(`<style>text { font: 9px sans-serif; fill: #57606a; }</style>` + "\n")

	for i, label := range heatmap.MonthLabels(grid.StartMonth, len(grid.Weeks)) {
		if label == "" {
			continue
		}
		fmt.Fprintf(&out, `<text x="%d" y="%d">%s</text>`+"\n",
			svgLeftPad+i*step, svgTopPad-6, label)
	}

	for row, label := range [7]string{"", "Mon", "", "Wed", "", "Fri", ""} {
		if label == "" {
			continue
		}
		fmt.Fprintf(&out, `<text x="0" y="%d">%s</text>`+"\n",
			svgTopPad+row*step+svgCellSize-2, label)
	}

	for w, week := range grid.Weeks {
		for d, cell := range week.Days {
			fmt.Fprintf(&out, `<rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s"><title>%s: %s tokens</title></rect>`+"\n",
				svgLeftPad+w*step, svgTopPad+d*step, svgCellSize, svgCellSize,
				colors[cell.Level], cell.Date, FormatNumber(cell.Tokens))
		}
	}

	legendY := svgTopPad + 7*step + 12
	fmt.Fprintf(&out, `<text x="%d" y="%d">Less</text>`+"\n", svgLeftPad, legendY+svgCellSize-2)
	for level := 0; level <= 4; level++ {
		fmt.Fprintf(&out, `<rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s"/>`+"\n",
			svgLeftPad+26+level*step, legendY, svgCellSize, svgCellSize, colors[level])
	}
	fmt.Fprintf(&out, `<text x="%d" y="%d">More</text>`+"\n",
		svgLeftPad+26+5*step+4, legendY+svgCellSize-2)
	fmt.Fprintf(&out, `<text x="%d" y="%d">%s tokens in %s</text>`+"\n",
		svgLeftPad+170, legendY+svgCellSize-2, FormatNumber(grid.TotalTokens), periodName(grid))

	out.WriteString("</svg>\n")
	return out.String()
}

// WriteFile renders the grid and writes it to path. Write failures are
// fatal for the invocation, unlike the recoverable load-stage errors.
func (r *SVGRenderer) WriteFile(path string, grid types.ContributionGrid) error {
	if err := os.WriteFile(path, []byte(r.Render(grid)), 0o644); err != nil {
		return types.RenderError{Target: path, Err: err}
	}
	return nil
}

// DefaultFileName names the export by year, with a month suffix for
// non-January windows.
func DefaultFileName(year, startMonth int) string {
	if startMonth == 1 {
		return fmt.Sprintf("claude-usage-%d.svg", year)
	}
	return fmt.Sprintf("claude-usage-%d-%02d.svg", year, startMonth)
}
