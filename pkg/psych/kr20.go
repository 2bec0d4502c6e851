package psych

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// DegenerateInputError reports inputs on which the reliability coefficient
// is statistically undefined. Callers surface it instead of propagating
// NaN/Inf into reports.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate reliability input: " + e.Reason
}

// Variance is the population variance (divide by N, not N-1) of student
// total scores. The original engine divides by N; preserved deliberately.
func Variance(totals []float64) (float64, error) {
	if len(totals) == 0 {
		return 0, &DegenerateInputError{Reason: "no student totals"}
	}
	v, err := stats.PopulationVariance(stats.Float64Data(totals))
	if err != nil {
		return 0, fmt.Errorf("population variance: %w", err)
	}
	return v, nil
}

// KR20 computes the Kuder-Richardson Formula 20 coefficient:
//
//	KR-20 = (k / (k-1)) * (1 - sumPQ / variance)
//
// k must exceed 1 and variance must be non-zero; both conditions abort with
// a DegenerateInputError rather than dividing by zero.
func KR20(k int, sumPQ, variance float64) (float64, error) {
	if k <= 1 {
		return 0, &DegenerateInputError{Reason: fmt.Sprintf("need at least 2 questions, got %d", k)}
	}
	if variance == 0 {
		return 0, &DegenerateInputError{Reason: "zero variance: every student scored identically"}
	}
	kf := float64(k)
	return (kf / (kf - 1)) * (1 - sumPQ/variance), nil
}

// verdictCutoff pairs a lower bound with its interpretation. Evaluated
// top-down; first match wins.
type verdictCutoff struct {
	min     float64
	verdict string
}

var verdicts = []verdictCutoff{
	{0.90, "Excellent reliability; at the level of the best standardized tests."},
	{0.80, "Very good for a classroom test."},
	{0.70, "Good for a classroom test. There are probably a few items which could be improved."},
	{0.60, "Somewhat low. This test needs to be supplemented by other measures to determine grades."},
	{0.51, "Suggests need for revision of test, unless it is quite short. The test needs to be supplemented by other measures for grading."},
}

const fallbackVerdict = "Questionable reliability. This test should not contribute heavily to the course grade, and it needs revision."

// VerdictFor maps a KR-20 coefficient to its qualitative interpretation.
func VerdictFor(kr20 float64) string {
	for _, v := range verdicts {
		if kr20 >= v.min {
			return v.verdict
		}
	}
	return fallbackVerdict
}
