package agent

import (
	"fmt"
	"strings"

	"github.com/hrygo/portfolioai/ai/knowledge"
)

// writeCountTable renders counts as a markdown table ordered by count.
func writeCountTable(b *strings.Builder, title, column string, counts map[string]int, total int) {
	fmt.Fprintf(b, "### %s\n\n| %s | Count | Share |\n|---|---|---|\n", title, column)
	for _, k := range knowledge.SortedByCount(counts) {
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", k, counts[k], percent(counts[k], total))
	}
	b.WriteString("\n")
}

// writeCrossTab renders a cross tabulation with a row total column.
func writeCrossTab(b *strings.Builder, title string, ct *knowledge.CrossTab) {
	cols := ct.ColumnValues()
	fmt.Fprintf(b, "### %s\n\n| %s |", title, ct.Rows)
	for _, c := range cols {
		fmt.Fprintf(b, " %s |", c)
	}
	b.WriteString(" Total |\n|---|")
	b.WriteString(strings.Repeat("---|", len(cols)+1))
	b.WriteString("\n")
	for _, r := range ct.RowValues() {
		fmt.Fprintf(b, "| %s |", r)
		for _, c := range cols {
			fmt.Fprintf(b, " %d |", ct.Counts[r][c])
		}
		fmt.Fprintf(b, " %d |\n", ct.RowTotals[r])
	}
	b.WriteString("\n")
}
