package outcome

import (
	"fmt"
	"math"

	"github.com/acadqa/outcome-engine/internal/numutil"
	"github.com/acadqa/outcome-engine/pkg/cloconfig"
)

// DefaultIndirectTarget is the fixed target percentage indirect (survey
// derived) achievement is compared against.
const DefaultIndirectTarget = 80.0

// RollupRow pairs one CLO's direct achievement with its indirect
// achievement inside an outcome group.
type RollupRow struct {
	Group           string
	CLO             string
	Direct          float64 // percentage achieving, at the caller-chosen benchmark
	Indirect        float64 // externally supplied, e.g. survey derived
	DirectComment   string
	IndirectComment string
}

// DeviationComment phrases actual vs target. Exact equality is checked
// before the sign comparison; the magnitude is reported to one decimal.
func DeviationComment(actual, target float64) string {
	if actual == target {
		return "actual achievement equals the target"
	}
	diff := numutil.Round1(math.Abs(actual - target))
	if actual > target {
		return fmt.Sprintf("actual is greater than target by %.1f%%", diff)
	}
	return fmt.Sprintf("actual is less than target by %.1f%%", diff)
}

// Rollup groups CLO achievement into the supplied outcome categories. Every
// CLO a group references must appear in the achievement rows; the group map
// is a required, complete input and an unknown CLO is a configuration
// error, not a silent omission. Indirect percentages missing from the
// supplied map read as zero. directTarget is the target the direct
// percentages are compared against; indirect comparisons use
// DefaultIndirectTarget.
func Rollup(gm cloconfig.GroupMap, achieved []AchievementRow, indirect map[string]float64, directTarget float64) ([]RollupRow, error) {
	byCLO := make(map[string]AchievementRow, len(achieved))
	known := make([]string, 0, len(achieved))
	for _, row := range achieved {
		byCLO[row.CLO] = row
		known = append(known, row.CLO)
	}
	if err := gm.Validate(known); err != nil {
		return nil, err
	}

	var out []RollupRow
	for _, g := range gm.Groups {
		for _, clo := range g.CLOs {
			direct := byCLO[clo].PercentAchieving
			ind := indirect[clo]
			out = append(out, RollupRow{
				Group:           g.Name,
				CLO:             clo,
				Direct:          direct,
				Indirect:        ind,
				DirectComment:   DeviationComment(direct, directTarget),
				IndirectComment: DeviationComment(ind, DefaultIndirectTarget),
			})
		}
	}
	return out, nil
}
