package outcome

import (
	"github.com/acadqa/outcome-engine/internal/numutil"
	"github.com/acadqa/outcome-engine/pkg/grades"
)

// DefaultThresholds are the benchmark percentages the collaborating
// application reports on. Achievement accepts any integer percentage; these
// are merely the conventional set.
var DefaultThresholds = []int{60, 70, 80, 90}

// AchievementRow is one CLO's standing against one benchmark threshold.
type AchievementRow struct {
	CLO              string
	Threshold        int     // percentage
	Cutoff           float64 // marks a student needs: marksPossible * threshold/100
	CutoffGrade      string  // letter grade at the threshold percentage
	AchievingCount   int
	PercentAchieving float64
}

// Achievement evaluates every CLO in the set against one threshold. The
// same function serves every threshold. An empty set yields zero
// percentages, not NaN.
func Achievement(s *Set, threshold int) []AchievementRow {
	total := s.Len()
	out := make([]AchievementRow, 0, len(s.CLOs()))
	for _, clo := range s.CLOs() {
		cutoff := numutil.Round2(s.MarksPossible(clo) * float64(threshold) / 100)
		row := AchievementRow{
			CLO:         clo,
			Threshold:   threshold,
			Cutoff:      cutoff,
			CutoffGrade: grades.Letter(float64(threshold)),
		}
		for _, st := range s.Students() {
			if s.Get(st.ID, clo).MarksScored >= cutoff {
				row.AchievingCount++
			}
		}
		if total > 0 {
			row.PercentAchieving = numutil.Round2(float64(row.AchievingCount) / float64(total) * 100)
		}
		out = append(out, row)
	}
	return out
}

// AchievementAll runs Achievement once per threshold, in the order given.
func AchievementAll(s *Set, thresholds ...int) [][]AchievementRow {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds
	}
	out := make([][]AchievementRow, 0, len(thresholds))
	for _, t := range thresholds {
		out = append(out, Achievement(s, t))
	}
	return out
}
