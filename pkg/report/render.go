package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/acadqa/outcome-engine/pkg/outcome"
)

func newTable(w io.Writer, aligns []tw.Align) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{PerColumn: aligns},
		},
	}))
}

// Render writes the reliability analysis as plain-text tables.
func (r Reliability) Render(w io.Writer) error {
	items := newTable(w, []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft})
	items.Header("Question", "p", "pq", "D", "Classification")
	for _, it := range r.Items {
		_ = items.Append(it.Label,
			fmt.Sprintf("%.2f", it.P),
			fmt.Sprintf("%.2f", it.PQ),
			fmt.Sprintf("%.2f", it.Discrimination),
			string(it.Bucket))
	}
	items.Footer("KR-20:", fmt.Sprintf("%.2f", r.KR20), "", "", r.Verdict)
	if err := items.Render(); err != nil {
		return err
	}

	for _, bg := range r.Buckets {
		if _, err := fmt.Fprintf(w, "%s: %s\n", bg.Bucket, strings.Join(bg.Labels, ", ")); err != nil {
			return err
		}
	}

	dist := newTable(w, []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight})
	dist.Header("Grade", "Count", "Percent")
	for _, b := range r.Distribution.Bands {
		_ = dist.Append(b.Letter, fmt.Sprintf("%d", b.Count), fmt.Sprintf("%.2f", b.Percent))
	}
	dist.Footer("Passed",
		fmt.Sprintf("%d", r.Distribution.Passed),
		fmt.Sprintf("%.2f", r.Distribution.PassPercent))
	return dist.Render()
}

// RenderAchievement writes benchmark achievement rows as a table.
func RenderAchievement(w io.Writer, rows []outcome.AchievementRow) error {
	t := newTable(w, []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft, tw.AlignRight})
	t.Header("CLO", "Benchmark", "Cutoff", "Grade", "% Achieving")
	for _, row := range rows {
		_ = t.Append(row.CLO,
			fmt.Sprintf("%d%%", row.Threshold),
			fmt.Sprintf("%.2f", row.Cutoff),
			row.CutoffGrade,
			fmt.Sprintf("%.2f", row.PercentAchieving))
	}
	return t.Render()
}

// RenderRollup writes grouped direct/indirect comparisons as a table.
func RenderRollup(w io.Writer, rows []outcome.RollupRow) error {
	t := newTable(w, []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft})
	t.Header("Group", "CLO", "Direct", "Indirect", "Comment")
	for _, row := range rows {
		_ = t.Append(row.Group, row.CLO,
			fmt.Sprintf("%.2f", row.Direct),
			fmt.Sprintf("%.2f", row.Indirect),
			row.IndirectComment)
	}
	return t.Render()
}
