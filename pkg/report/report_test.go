package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/acadqa/outcome-engine/pkg/grades"
	"github.com/acadqa/outcome-engine/pkg/outcome"
	"github.com/acadqa/outcome-engine/pkg/psych"
	"github.com/acadqa/outcome-engine/pkg/report"
)

func sampleReliability() report.Reliability {
	items := []psych.ItemStat{
		{Label: "Q1", P: 0.9, PQ: 0.09, Bucket: psych.VeryEasy},
		{Label: "Q2", P: 0.5, PQ: 0.25, Bucket: psych.Good},
		{Label: "Q3", P: 0.45, PQ: 0.2475, Bucket: psych.Good},
		{Label: "Q4", P: 0.5, Discrimination: -0.2, PQ: 0.25, Bucket: psych.Poor},
	}
	dist := grades.Distribute([]float64{92, 55, 71})
	return report.NewReliability(0.714, "Good for a classroom test.", items, nil, dist)
}

func TestNewReliabilityGroupsBucketsInOrder(t *testing.T) {
	rep := sampleReliability()
	if rep.KR20 != 0.71 {
		t.Fatalf("KR-20 should be stored rounded: %v", rep.KR20)
	}
	if len(rep.Buckets) != 3 {
		t.Fatalf("bucket groups: %+v", rep.Buckets)
	}
	// Fixed report order: Poor before the difficulty buckets.
	if rep.Buckets[0].Bucket != psych.Poor || rep.Buckets[0].Labels[0] != "Q4" {
		t.Fatalf("first group: %+v", rep.Buckets[0])
	}
	if rep.Buckets[1].Bucket != psych.Good || len(rep.Buckets[1].Labels) != 2 {
		t.Fatalf("second group: %+v", rep.Buckets[1])
	}
}

func TestReliabilityRender(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReliability().Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Q1", "Very Easy", "Poor: Q4", "KR-20:", "Passed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAchievement(t *testing.T) {
	var buf bytes.Buffer
	rows := []outcome.AchievementRow{
		{CLO: "CLO1", Threshold: 60, Cutoff: 6, CutoffGrade: "C", PercentAchieving: 60},
	}
	if err := report.RenderAchievement(&buf, rows); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "CLO1") || !strings.Contains(buf.String(), "60%") {
		t.Fatalf("rendered achievement missing content:\n%s", buf.String())
	}
}

func TestRenderRollup(t *testing.T) {
	var buf bytes.Buffer
	rows := []outcome.RollupRow{
		{Group: "knowledge", CLO: "CLO1", Direct: 90, Indirect: 85,
			IndirectComment: "actual is greater than target by 5.0%"},
	}
	if err := report.RenderRollup(&buf, rows); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "knowledge") {
		t.Fatalf("rendered rollup missing group:\n%s", buf.String())
	}
}
