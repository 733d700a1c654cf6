package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/aggregate"
	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/service"
)

func heatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Render a month's spending heat-map",
		Example: `  penny heatmap
  penny heatmap --month 2026-07`,
		RunE: runHeatmap,
	}

	cmd.Flags().String("month", "", "month to render (YYYY-MM, default current)")

	return cmd
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	monthText, _ := cmd.Flags().GetString("month")

	month := time.Now()
	if monthText != "" {
		var err error
		month, err = parseMonth(monthText)
		if err != nil {
			return err
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	start, end := monthRange(month)
	txns, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	hm := aggregate.BuildHeatmap(txns, month.Year(), month.Month(), time.Local)
	fmt.Println(cli.FormatTitle(month.Format("January 2006")))
	fmt.Print(renderHeatmap(hm, start))
	return nil
}

var heatmapLevelStyles = [aggregate.HeatmapLevels]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("173")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
}

// renderHeatmap lays the cells out as a calendar grid, Monday first.
func renderHeatmap(hm aggregate.MonthHeatmap, monthStart time.Time) string {
	var b strings.Builder
	b.WriteString("Mo Tu We Th Fr Sa Su\n")

	// Monday-first offset of day 1.
	offset := (int(monthStart.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))

	col := offset
	for _, cell := range hm.Cells {
		glyph := "·"
		if cell.Count > 0 {
			glyph = "■"
		}
		b.WriteString(heatmapLevelStyles[cell.Level].Render(glyph))
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
