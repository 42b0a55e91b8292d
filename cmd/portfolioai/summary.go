package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

func newSummaryCmd() *cobra.Command {
	var by, cross string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print event counts without calling a model",
		Example: `  portfolioai summary
  portfolioai summary --by city
  portfolioai summary --by city --cross tier`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prof, err := loadProfile()
			if err != nil {
				return err
			}
			kb, err := knowledge.Load(cmd.Context(), prof.Data)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), kb, by, cross)
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "dimension: city, tier, type, inclusion_status or organization")
	cmd.Flags().StringVar(&cross, "cross", "", "second dimension for a cross-tabulation (requires --by)")
	return cmd
}

func writeSummary(w io.Writer, kb *knowledge.Store, by, cross string) error {
	if by == "" {
		if cross != "" {
			return fmt.Errorf("--cross requires --by")
		}
		sum := kb.EventsSummary()
		fmt.Fprintf(w, "%s\n\n", titleStyle.Render(fmt.Sprintf("Total events: %d", sum.TotalCount)))
		for _, d := range knowledge.Dimensions {
			writeCounts(w, d, sum.Dimension(d), sum.TotalCount)
		}
		return nil
	}

	rows, err := knowledge.ParseDimension(by)
	if err != nil {
		return err
	}
	if cross == "" {
		sum := kb.EventsSummary()
		writeCounts(w, rows, sum.Dimension(rows), sum.TotalCount)
		return nil
	}

	cols, err := knowledge.ParseDimension(cross)
	if err != nil {
		return err
	}
	ct, err := kb.CrossTabulate(rows, cols)
	if err != nil {
		return err
	}
	writeCrossTab(w, ct)
	return nil
}

func writeCounts(w io.Writer, d knowledge.Dimension, counts map[string]int, total int) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(string(d), "Events", "Share")
	for _, k := range knowledge.SortedByCount(counts) {
		share := 0.0
		if total > 0 {
			share = float64(counts[k]) * 100 / float64(total)
		}
		t.Row(k, strconv.Itoa(counts[k]), fmt.Sprintf("%.1f%%", share))
	}
	fmt.Fprintf(w, "%s\n%s\n\n", titleStyle.Render("By "+string(d)), t.Render())
}

func writeCrossTab(w io.Writer, ct *knowledge.CrossTab) {
	columns := ct.ColumnValues()
	headers := append([]string{fmt.Sprintf("%s \\ %s", ct.Rows, ct.Columns)}, columns...)
	headers = append(headers, "Total")

	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for _, r := range ct.RowValues() {
		row := []string{r}
		for _, c := range columns {
			row = append(row, strconv.Itoa(ct.Counts[r][c]))
		}
		row = append(row, strconv.Itoa(ct.RowTotals[r]))
		t.Row(row...)
	}
	fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(fmt.Sprintf("%s by %s", ct.Rows, ct.Columns)), t.Render())
}
