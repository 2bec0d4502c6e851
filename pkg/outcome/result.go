// Package outcome scores assessment instruments against CLO mappings,
// aggregates the results across instruments, and evaluates benchmark
// achievement and outcome-group rollups.
package outcome

import (
	"fmt"
	"strings"

	"github.com/acadqa/outcome-engine/pkg/roster"
)

// Result is one student's accumulated standing on one CLO.
type Result struct {
	MarksScored   float64
	MarksPossible float64
	CorrectCount  int
	QuestionCount int
}

// Percent is the student's CLO percentage; zero possible yields zero.
func (r Result) Percent() float64 {
	if r.MarksPossible == 0 {
		return 0
	}
	return r.MarksScored / r.MarksPossible * 100
}

// Set holds per-student per-CLO results with deterministic iteration:
// students and CLOs appear in first-seen order, so repeated runs over the
// same inputs render identically.
type Set struct {
	clos     []string
	students []roster.Student
	index    map[string]int               // normalized student ID -> position
	results  map[string]map[string]Result // normalized ID -> CLO -> result
}

// NewSet returns an empty result set.
func NewSet() *Set {
	return &Set{
		index:   map[string]int{},
		results: map[string]map[string]Result{},
	}
}

// Add accumulates a contribution additively into the student's CLO total.
func (s *Set) Add(st roster.Student, clo string, r Result) {
	key := roster.Normalize(st.ID)
	if _, ok := s.index[key]; !ok {
		s.index[key] = len(s.students)
		s.students = append(s.students, st)
		s.results[key] = map[string]Result{}
	}
	if _, ok := s.results[key][clo]; !ok {
		s.ensureCLO(clo)
	}
	cur := s.results[key][clo]
	cur.MarksScored += r.MarksScored
	cur.MarksPossible += r.MarksPossible
	cur.CorrectCount += r.CorrectCount
	cur.QuestionCount += r.QuestionCount
	s.results[key][clo] = cur
}

func (s *Set) ensureCLO(clo string) {
	for _, c := range s.clos {
		if c == clo {
			return
		}
	}
	s.clos = append(s.clos, clo)
}

// CLOs returns CLO identifiers in first-seen order.
func (s *Set) CLOs() []string { return s.clos }

// Students returns students in first-seen order.
func (s *Set) Students() []roster.Student { return s.students }

// Len is the number of students in the set.
func (s *Set) Len() int { return len(s.students) }

// Get returns the accumulated result for a student and CLO. A CLO the
// student has no contribution for reads as the zero Result.
func (s *Set) Get(studentID, clo string) Result {
	m, ok := s.results[roster.Normalize(studentID)]
	if !ok {
		return Result{}
	}
	return m[clo]
}

// MarksPossible is the CLO's full-participation total: the maximum
// accumulated marksPossible across students. Students who missed an
// instrument carry a smaller personal denominator; benchmark cutoffs are
// taken against the full total.
func (s *Set) MarksPossible(clo string) float64 {
	max := 0.0
	for _, st := range s.students {
		if mp := s.Get(st.ID, clo).MarksPossible; mp > max {
			max = mp
		}
	}
	return max
}

// MismatchPolicy decides what happens when a performance row's identifier
// is not on the roster. There is no silent-skip policy: skipping would
// invisibly lower the denominator of every percentage downstream.
type MismatchPolicy int

const (
	// AbortOnMismatch fails on the first unmatched identifier.
	AbortOnMismatch MismatchPolicy = iota
	// CollectMismatches scores nothing and reports every unmatched
	// identifier at once; the batch still fails.
	CollectMismatches
)

// StudentNotFoundError reports a single unmatched identifier.
type StudentNotFoundError struct {
	ID         string
	Instrument string
}

func (e *StudentNotFoundError) Error() string {
	return fmt.Sprintf("student %q in instrument %q not found on roster", e.ID, e.Instrument)
}

// BatchMismatchError carries every unmatched identifier found under
// CollectMismatches.
type BatchMismatchError struct {
	Instrument string
	IDs        []string
}

func (e *BatchMismatchError) Error() string {
	return fmt.Sprintf("instrument %q: %d identifier(s) not on roster: %s",
		e.Instrument, len(e.IDs), strings.Join(e.IDs, ", "))
}
