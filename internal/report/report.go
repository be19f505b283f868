// Package report renders result sets and comparison reports as text tables,
// and optionally saves failure lists, a workbook and a duration chart.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/junit"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/summary"
)

// ShowSummary renders the totals, the pass rate, duration statistics and the
// per-test table of one result set. An absent set prints a placeholder
// instead of failing.
func ShowSummary(w io.Writer, rs *junit.ResultSet) {
	if rs == nil {
		fmt.Fprintf(w, "\n> Test Summary <\n\n <no results available>\n")
		return
	}
	fmt.Fprintf(w, "\n> Test Summary: %s <\n\n", rs.Label)

	tbWriter := tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.AlignRight)
	fmt.Fprintf(tbWriter, " Total\t: %d\n", rs.Total)
	fmt.Fprintf(tbWriter, " Passed\t: %d\n", rs.Passed)
	fmt.Fprintf(tbWriter, " Failed\t: %d\n", rs.Failed)
	fmt.Fprintf(tbWriter, " Skipped\t: %d\n", rs.Skipped)
	fmt.Fprintf(tbWriter, " Pass rate\t: %s\n", passRateString(rs))
	fmt.Fprintf(tbWriter, " Total time\t: %.3fs\n", rs.Time)
	tbWriter.Flush()

	if durations := caseDurations(rs); len(durations) > 0 {
		min, _ := stats.Min(durations)
		mean, _ := stats.Mean(durations)
		p95, _ := stats.Percentile(durations, 95)
		max, _ := stats.Max(durations)
		fmt.Fprintf(w, "\n Test duration (s): min=%.3f mean=%.3f p95=%.3f max=%.3f\n", min, mean, p95, max)
	}

	if len(rs.Cases) == 0 {
		return
	}
	fmt.Fprintf(w, "\n Tests:\n")
	tbWriter = tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.AlignRight)
	fmt.Fprintf(tbWriter, " Status\tTime\t Test\n")
	for _, tc := range sortedCases(rs) {
		detail := ""
		if tc.Status == junit.StatusFailed {
			detail = fmt.Sprintf(" [%s: %s]", tc.FailureType, tc.FailureMessage)
		}
		fmt.Fprintf(tbWriter, " %s\t%.3fs\t %s%s\n", tc.Status, tc.Time, tc.ID(), detail)
	}
	tbWriter.Flush()
}

// ShowComparison renders the metric table, the identity difference lists and
// the status transitions of one comparison.
func ShowComparison(w io.Writer, cr *summary.ComparisonReport) {
	fmt.Fprintf(w, "\n> Comparison: %s <\n\n", cr.Label)

	tbWriter := tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.AlignRight)
	fmt.Fprintf(tbWriter, " Metric\t %s\t %s\t Delta\n", cr.Base.Label, cr.Other.Label)
	for _, m := range cr.Metrics {
		if m.Integer {
			fmt.Fprintf(tbWriter, " %s\t %.0f\t %.0f\t %+.0f\n", m.Name, m.Base, m.Other, m.Delta)
			continue
		}
		fmt.Fprintf(tbWriter, " %s\t %.2f\t %.2f\t %+.2f\n", m.Name, m.Base, m.Other, m.Delta)
	}
	tbWriter.Flush()

	showIdentityList(w, fmt.Sprintf("Tests only in %s", cr.Base.Label), cr.OnlyInBase)
	showIdentityList(w, fmt.Sprintf("Tests only in %s", cr.Other.Label), cr.OnlyInOther)

	fmt.Fprintf(w, "\n Status transitions:\n")
	if len(cr.Transitions) == 0 {
		fmt.Fprintln(w, " <empty>")
		return
	}
	tbWriter = tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.AlignRight)
	for _, tr := range cr.Transitions {
		fmt.Fprintf(tbWriter, " %s\t: %s -> %s\n", tr.ID, tr.BaseStatus, tr.NewStatus)
	}
	tbWriter.Flush()
}

// ShowMultiComparison renders the metric table of the base run against every
// variant side by side. Absent variants show placeholders.
func ShowMultiComparison(w io.Writer, base *junit.ResultSet, variants []*junit.ResultSet) {
	fmt.Fprintf(w, "\n> Variant Comparison <\n\n")
	if base == nil {
		fmt.Fprintf(w, " <no baseline results available>\n")
		return
	}

	sets := append([]*junit.ResultSet{base}, variants...)
	tbWriter := tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.AlignRight)

	fmt.Fprintf(tbWriter, " Metric")
	for _, rs := range sets {
		if rs == nil {
			fmt.Fprintf(tbWriter, "\t <absent>")
			continue
		}
		fmt.Fprintf(tbWriter, "\t %s", rs.Label)
	}
	fmt.Fprintln(tbWriter)

	rows := []struct {
		name string
		cell func(*junit.ResultSet) string
	}{
		{"Total", func(rs *junit.ResultSet) string { return fmt.Sprintf("%d", rs.Total) }},
		{"Passed", func(rs *junit.ResultSet) string { return fmt.Sprintf("%d", rs.Passed) }},
		{"Failed", func(rs *junit.ResultSet) string { return fmt.Sprintf("%d", rs.Failed) }},
		{"Skipped", func(rs *junit.ResultSet) string { return fmt.Sprintf("%d", rs.Skipped) }},
		{"Pass rate", passRateString},
		{"Time (s)", func(rs *junit.ResultSet) string { return fmt.Sprintf("%.3f", rs.Time) }},
	}
	for _, row := range rows {
		fmt.Fprintf(tbWriter, " %s", row.name)
		for _, rs := range sets {
			if rs == nil {
				fmt.Fprintf(tbWriter, "\t N/A")
				continue
			}
			fmt.Fprintf(tbWriter, "\t %s", row.cell(rs))
		}
		fmt.Fprintln(tbWriter)
	}
	tbWriter.Flush()
}

func showIdentityList(w io.Writer, title string, ids []string) {
	fmt.Fprintf(w, "\n %s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(w, " <empty>")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, " - %s\n", id)
	}
}

func passRateString(rs *junit.ResultSet) string {
	if rs.Total == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", rs.PassRate())
}

func caseDurations(rs *junit.ResultSet) []float64 {
	durations := make([]float64, 0, len(rs.Cases))
	for _, tc := range rs.Cases {
		durations = append(durations, tc.Time)
	}
	return durations
}

// sortedCases orders failed first, then skipped, then passed, descending
// elapsed time within each group. The sort is stable so ties keep discovery
// order.
func sortedCases(rs *junit.ResultSet) []junit.TestCase {
	cases := make([]junit.TestCase, len(rs.Cases))
	copy(cases, rs.Cases)
	sort.SliceStable(cases, func(i, j int) bool {
		ri, rj := statusRank(cases[i].Status), statusRank(cases[j].Status)
		if ri != rj {
			return ri < rj
		}
		return cases[i].Time > cases[j].Time
	})
	return cases
}

func statusRank(status string) int {
	switch status {
	case junit.StatusFailed:
		return 0
	case junit.StatusSkipped:
		return 1
	default:
		return 2
	}
}
