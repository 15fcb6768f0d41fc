package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ccheatmap/internal/types"
)

type StatsFormatter struct {
	noColor bool
}

func NewStatsFormatter(noColor bool) *StatsFormatter {
	return &StatsFormatter{noColor: noColor}
}

// Format renders the stats report as a per-model table with a summary
// block underneath.
func (f *StatsFormatter) Format(report types.StatsReport) string {
	var out strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true)
	if !f.noColor {
		headerStyle = headerStyle.Foreground(lipgloss.Color("205"))
	}
	out.WriteString(headerStyle.Render("Claude Code Usage Statistics"))
	out.WriteString("\n\n")

	if report.EntryCount == 0 {
		out.WriteString("No usage data found for the selected range.\n")
		return out.String()
	}

	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignRight},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"Model", "Input", "Output", "Total", "Entries", "Cost (USD)"})
	for _, model := range report.Models {
		table.Append([]string{
			ShortenModelName(model.Model),
			FormatNumber(model.InputTokens),
			FormatNumber(model.OutputTokens),
			FormatNumber(model.TotalTokens),
			FormatNumber(model.EntryCount),
			fmt.Sprintf("$%.2f", model.Cost),
		})
	}
	table.Footer([]string{
		"Total",
		FormatNumber(report.InputTokens),
		FormatNumber(report.OutputTokens),
		FormatNumber(report.TotalTokens),
		FormatNumber(report.EntryCount),
		fmt.Sprintf("$%.2f", report.TotalCost),
	})
	table.Render()
	out.Write(buf.Bytes())

	out.WriteString("\n")
	if report.From != "" || report.To != "" {
		out.WriteString(fmt.Sprintf("Range:        %s .. %s\n", orOpen(report.From), orOpen(report.To)))
	}
	out.WriteString(fmt.Sprintf("Active days:  %d\n", report.Days))
	out.WriteString(fmt.Sprintf("Peak day:     %s (%s tokens)\n", report.PeakDay, FormatNumber(report.PeakTokens)))
	out.WriteString(fmt.Sprintf("Daily avg:    %s tokens\n", FormatNumber(int(report.AverageTokens))))

	return out.String()
}

// FormatJSON emits the report as indented JSON for scripting.
func (f *StatsFormatter) FormatJSON(report types.StatsReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func orOpen(s string) string {
	if s == "" {
		return "(open)"
	}
	return s
}

var (
	modelWithMinor = regexp.MustCompile(`^claude-(\w+)-(\d+)-(\d+)-\d+`)
	modelStandard  = regexp.MustCompile(`^claude-(\w+)-(\d+)-\d+`)
)

// ShortenModelName compacts dated model IDs for table display:
// claude-sonnet-4-5-20250929 -> Sonnet-4.5, claude-opus-4-20250514 -> Opus-4.
func ShortenModelName(model string) string {
	if matches := modelWithMinor.FindStringSubmatch(model); matches != nil {
		return fmt.Sprintf("%s-%s.%s", titleCase(matches[1]), matches[2], matches[3])
	}
	if matches := modelStandard.FindStringSubmatch(model); matches != nil {
		return fmt.Sprintf("%s-%s", titleCase(matches[1]), matches[2])
	}
	if model == "" {
		return "(unknown)"
	}
	if len(model) > 20 {
		return model[:20]
	}
	return model
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
