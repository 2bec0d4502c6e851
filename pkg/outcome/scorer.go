package outcome

import (
	"fmt"
	"strings"

	"github.com/acadqa/outcome-engine/internal/numutil"
	"github.com/acadqa/outcome-engine/pkg/cloconfig"
	"github.com/acadqa/outcome-engine/pkg/grid"
	"github.com/acadqa/outcome-engine/pkg/roster"
)

// BinaryRow is one student's pre-scored 1/0 answers for ModeBinary
// instruments; Values[i] is question i+1.
type BinaryRow struct {
	ID     string
	Name   string
	Values []string
}

// AggregateRow is one student's single total mark for ModeAggregate
// instruments.
type AggregateRow struct {
	ID    string
	Name  string
	Score float64
}

// rowPerf is the mode-neutral form every strategy reduces its input to.
type rowPerf struct {
	id, name string
	correct  []bool  // indexed by question number - 1; nil in aggregate mode
	score    float64 // aggregate mode only
}

// modeStrategy reduces one instrument's raw performance to rowPerf records.
type modeStrategy interface {
	rows(inst cloconfig.Instrument, perf interface{}) ([]rowPerf, error)
	maxQuestion(perf interface{}) int
}

var strategies = map[cloconfig.Mode]modeStrategy{
	cloconfig.ModeKeyed:     keyedStrategy{},
	cloconfig.ModeBinary:    binaryStrategy{},
	cloconfig.ModeAggregate: aggregateStrategy{},
}

// ScoreInstrument converts one instrument's raw student performance into
// per-CLO contributions. perf must match the instrument's mode:
// *grid.Table for keyed, []BinaryRow for binary, []AggregateRow for
// aggregate. Marks are rounded to 2 decimals at the point of storage so
// rounding drift cannot compound asymmetrically across students.
func ScoreInstrument(inst cloconfig.Instrument, ros *roster.Roster, perf interface{}, policy MismatchPolicy) (*Set, error) {
	strat, ok := strategies[inst.Mode]
	if !ok {
		return nil, &cloconfig.ConfigurationError{Reason: fmt.Sprintf("instrument %q: unknown mode %q", inst.Name, inst.Mode)}
	}
	if err := inst.Validate(strat.maxQuestion(perf)); err != nil {
		return nil, err
	}
	rows, err := strat.rows(inst, perf)
	if err != nil {
		return nil, err
	}

	totalQ := inst.QuestionCount()
	marksPerQuestion := inst.Weight / float64(totalQ)

	set := NewSet()
	var unmatched []string
	for _, row := range rows {
		st, ok := ros.Lookup(row.id)
		if !ok {
			if policy == AbortOnMismatch {
				return nil, &StudentNotFoundError{ID: row.id, Instrument: inst.Name}
			}
			unmatched = append(unmatched, row.id)
			continue
		}
		for _, cq := range inst.CLOs {
			r := Result{
				MarksPossible: numutil.Round2(inst.Weight * float64(len(cq.Questions)) / float64(totalQ)),
				QuestionCount: len(cq.Questions),
			}
			if row.correct != nil {
				for _, q := range cq.Questions {
					if q-1 < len(row.correct) && row.correct[q-1] {
						r.CorrectCount++
					}
				}
				r.MarksScored = numutil.Round2(float64(r.CorrectCount) * marksPerQuestion)
			} else {
				r.MarksScored = numutil.Round2(row.score * float64(len(cq.Questions)) / float64(totalQ))
			}
			set.Add(st, cq.CLO, r)
		}
	}
	if len(unmatched) > 0 {
		return nil, &BatchMismatchError{Instrument: inst.Name, IDs: unmatched}
	}
	return set, nil
}

// --- mode strategies ---

type keyedStrategy struct{}

func (keyedStrategy) maxQuestion(perf interface{}) int {
	if t, ok := perf.(*grid.Table); ok {
		return t.Key.Len()
	}
	return 0
}

func (keyedStrategy) rows(inst cloconfig.Instrument, perf interface{}) ([]rowPerf, error) {
	t, ok := perf.(*grid.Table)
	if !ok {
		return nil, fmt.Errorf("instrument %q: keyed mode needs *grid.Table, got %T", inst.Name, perf)
	}
	out := make([]rowPerf, 0, len(t.Rows))
	for _, row := range t.Rows {
		rp := rowPerf{id: row.ID, name: row.Name, correct: make([]bool, t.Key.Len())}
		for i := range rp.correct {
			rp.correct[i] = row.Correct(t.Key, i)
		}
		out = append(out, rp)
	}
	return out, nil
}

type binaryStrategy struct{}

func (binaryStrategy) maxQuestion(perf interface{}) int {
	rows, ok := perf.([]BinaryRow)
	if !ok {
		return 0
	}
	max := 0
	for _, r := range rows {
		if len(r.Values) > max {
			max = len(r.Values)
		}
	}
	return max
}

func (binaryStrategy) rows(inst cloconfig.Instrument, perf interface{}) ([]rowPerf, error) {
	rows, ok := perf.([]BinaryRow)
	if !ok {
		return nil, fmt.Errorf("instrument %q: binary mode needs []BinaryRow, got %T", inst.Name, perf)
	}
	out := make([]rowPerf, 0, len(rows))
	for _, row := range rows {
		rp := rowPerf{id: row.ID, name: row.Name, correct: make([]bool, len(row.Values))}
		for i, v := range row.Values {
			rp.correct[i] = strings.TrimSpace(v) == "1"
		}
		out = append(out, rp)
	}
	return out, nil
}

type aggregateStrategy struct{}

// Aggregate instruments have no per-question backing; the range check is
// skipped by reporting no maximum.
func (aggregateStrategy) maxQuestion(interface{}) int { return 0 }

func (aggregateStrategy) rows(inst cloconfig.Instrument, perf interface{}) ([]rowPerf, error) {
	rows, ok := perf.([]AggregateRow)
	if !ok {
		return nil, fmt.Errorf("instrument %q: aggregate mode needs []AggregateRow, got %T", inst.Name, perf)
	}
	out := make([]rowPerf, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowPerf{id: row.ID, name: row.Name, score: row.Score})
	}
	return out, nil
}
