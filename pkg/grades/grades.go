// Package grades maps percentages onto the fixed nine-band letter scale and
// tabulates grade distributions.
package grades

import "github.com/acadqa/outcome-engine/internal/numutil"

// Band is one letter grade with its inclusive lower percentage bound.
type Band struct {
	Letter string
	Min    float64
}

// Scale is the fixed nine-band scale shared by every computation. Evaluated
// top-down; the terminal F band catches everything below 60.
var Scale = []Band{
	{"A+", 95},
	{"A", 90},
	{"A-", 85},
	{"B+", 80},
	{"B", 75},
	{"B-", 70},
	{"C+", 65},
	{"C", 60},
	{"F", 0},
}

const failLetter = "F"

// Letter maps a percentage to its band letter.
func Letter(percent float64) string {
	for _, b := range Scale[:len(Scale)-1] {
		if percent >= b.Min {
			return b.Letter
		}
	}
	return failLetter
}

// BandCount is one row of a grade distribution.
type BandCount struct {
	Letter  string
	Count   int
	Percent float64 // rounded to 2 decimals
}

// Distribution tabulates counts and percentages per band, plus the
// pass/fail summary (pass means any band other than F).
type Distribution struct {
	Bands       []BandCount
	Total       int
	Passed      int
	Failed      int
	PassPercent float64
	FailPercent float64
}

// Distribute tabulates the given percentages. An empty input yields
// all-zero percentages rather than dividing by zero.
func Distribute(percents []float64) Distribution {
	counts := make(map[string]int, len(Scale))
	passed := 0
	for _, p := range percents {
		letter := Letter(p)
		counts[letter]++
		if letter != failLetter {
			passed++
		}
	}

	d := Distribution{Total: len(percents), Passed: passed, Failed: len(percents) - passed}
	for _, b := range Scale {
		bc := BandCount{Letter: b.Letter, Count: counts[b.Letter]}
		if d.Total > 0 {
			bc.Percent = numutil.Round2(float64(bc.Count) / float64(d.Total) * 100)
		}
		d.Bands = append(d.Bands, bc)
	}
	if d.Total > 0 {
		d.PassPercent = numutil.Round2(float64(d.Passed) / float64(d.Total) * 100)
		d.FailPercent = numutil.Round2(float64(d.Failed) / float64(d.Total) * 100)
	}
	return d
}
