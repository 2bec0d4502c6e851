// Package psych computes item-level psychometrics and the KR-20
// internal-consistency coefficient for a scored answer grid.
package psych

import (
	"math"
	"sort"

	"github.com/acadqa/outcome-engine/pkg/grid"
)

// Bucket is an item difficulty/discrimination classification.
type Bucket string

const (
	Poor          Bucket = "Poor"
	VeryDifficult Bucket = "Very Difficult"
	Difficult     Bucket = "Difficult"
	Good          Bucket = "Good"
	Easy          Bucket = "Easy"
	VeryEasy      Bucket = "Very Easy"
)

// Buckets lists every classification in report order.
var Buckets = []Bucket{Poor, VeryDifficult, Difficult, Good, Easy, VeryEasy}

// poorDiscrimination is the boundary at or below which an item is
// force-classified Poor regardless of difficulty.
const poorDiscrimination = -0.1

// upperLowerFraction is the share of students in each comparison group for
// the discrimination index.
const upperLowerFraction = 0.27

// ItemStat carries one question's difficulty statistics.
type ItemStat struct {
	Label          string
	P              float64 // fraction of students answering correctly
	Q              float64 // 1 - P
	PQ             float64 // P * Q, summed into the KR-20 numerator
	Discrimination float64 // upper/lower group index; 0 when not computable
	Bucket         Bucket
}

// Classify maps difficulty p (0..1) and a discrimination index to a bucket.
// Every p maps to exactly one difficulty range; a discrimination at or below
// poorDiscrimination overrides the difficulty classification entirely.
func Classify(p, discrimination float64) Bucket {
	if discrimination <= poorDiscrimination {
		return Poor
	}
	pct := p * 100
	switch {
	case pct >= 81:
		return VeryEasy
	case pct >= 71:
		return Easy
	case pct >= 31:
		return Good
	case pct >= 21:
		return Difficult
	default:
		return VeryDifficult
	}
}

// ItemStats computes per-question statistics for a grid. Each call builds a
// fresh set; re-running an analysis replaces, never mutates, prior results.
// With zero student rows every p is 0 rather than undefined.
func ItemStats(t *grid.Table) []ItemStat {
	n := len(t.Rows)
	disc := discriminationByLabel(t)

	out := make([]ItemStat, 0, t.Key.Len())
	for i, label := range t.Key.Labels() {
		correct := 0
		for _, row := range t.Rows {
			if row.Correct(t.Key, i) {
				correct++
			}
		}
		p := 0.0
		if n > 0 {
			p = float64(correct) / float64(n)
		}
		st := ItemStat{
			Label:          label,
			P:              p,
			Q:              1 - p,
			PQ:             p * (1 - p),
			Discrimination: disc[label],
		}
		st.Bucket = Classify(st.P, st.Discrimination)
		out = append(out, st)
	}
	return out
}

// SumPQ folds item pq values into the KR-20 numerator term.
func SumPQ(stats []ItemStat) float64 {
	sum := 0.0
	for _, s := range stats {
		sum += s.PQ
	}
	return sum
}

// discriminationByLabel computes the upper/lower 27% discrimination index
// per question: D = pUpper - pLower over the groups formed by ranking
// students on total score. Cohorts too small to form non-empty groups on
// both ends report 0 for every item, which never triggers the Poor override.
func discriminationByLabel(t *grid.Table) map[string]float64 {
	out := make(map[string]float64, t.Key.Len())
	for _, label := range t.Key.Labels() {
		out[label] = 0
	}

	group := int(math.Round(float64(len(t.Rows)) * upperLowerFraction))
	if group == 0 || group*2 > len(t.Rows) {
		return out
	}

	ranked := make([]int, len(t.Rows))
	for i := range ranked {
		ranked[i] = i
	}
	totals := t.Totals()
	sort.SliceStable(ranked, func(a, b int) bool {
		return totals[ranked[a]].Correct > totals[ranked[b]].Correct
	})

	for i, label := range t.Key.Labels() {
		upper, lower := 0, 0
		for g := 0; g < group; g++ {
			if t.Rows[ranked[g]].Correct(t.Key, i) {
				upper++
			}
			if t.Rows[ranked[len(ranked)-1-g]].Correct(t.Key, i) {
				lower++
			}
		}
		out[label] = float64(upper-lower) / float64(group)
	}
	return out
}
