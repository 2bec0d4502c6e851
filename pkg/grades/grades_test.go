package grades

import (
	"math"
	"testing"
)

func TestLetterBreakpoints(t *testing.T) {
	cases := []struct {
		percent float64
		want    string
	}{
		{100, "A+"}, {95, "A+"},
		{94.99, "A"}, {90, "A"},
		{89.5, "A-"}, {85, "A-"},
		{84, "B+"}, {80, "B+"},
		{79, "B"}, {75, "B"},
		{74, "B-"}, {70, "B-"},
		{69, "C+"}, {65, "C+"},
		{64, "C"}, {60, "C"},
		{59.99, "F"}, {0, "F"},
	}
	for _, c := range cases {
		if got := Letter(c.percent); got != c.want {
			t.Fatalf("Letter(%v): got %s, want %s", c.percent, got, c.want)
		}
	}
}

func TestDistributePercentagesSumTo100(t *testing.T) {
	percents := []float64{97, 91, 88, 82, 77, 72, 67, 61, 30, 55, 99}
	d := Distribute(percents)
	sum := 0.0
	for _, b := range d.Bands {
		sum += b.Percent
	}
	if math.Abs(sum-100) > 0.1 {
		t.Fatalf("band percentages sum to %v, want 100 within 0.1", sum)
	}
	if d.Passed+d.Failed != d.Total {
		t.Fatalf("pass/fail split %d+%d != %d", d.Passed, d.Failed, d.Total)
	}
	if d.Failed != 2 {
		t.Fatalf("failed: got %d, want 2", d.Failed)
	}
}

func TestDistributeEmptyRoster(t *testing.T) {
	d := Distribute(nil)
	if d.Total != 0 || d.Passed != 0 || d.Failed != 0 {
		t.Fatalf("empty distribution: %+v", d)
	}
	if d.PassPercent != 0 || d.FailPercent != 0 {
		t.Fatalf("empty roster must yield zero percentages: %+v", d)
	}
	for _, b := range d.Bands {
		if b.Percent != 0 || b.Count != 0 {
			t.Fatalf("band %s non-zero on empty input: %+v", b.Letter, b)
		}
	}
	if len(d.Bands) != 9 {
		t.Fatalf("expected all 9 bands present, got %d", len(d.Bands))
	}
}

func TestDistributeRounding(t *testing.T) {
	// 1 of 3 students per populated band: 33.33 each.
	d := Distribute([]float64{96, 72, 10})
	for _, b := range d.Bands {
		if b.Count == 1 && b.Percent != 33.33 {
			t.Fatalf("band %s percent: got %v, want 33.33", b.Letter, b.Percent)
		}
	}
}
