// Package roster holds the class roster supplied by the collaborating
// application and the shared identifier normalization every other package
// uses when matching students.
package roster

import (
	"fmt"
	"strings"
)

// Normalize is the single canonical form for student identifiers: trimmed
// and lowercased. All identifier comparisons in the engine go through it.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Student is an explicit, named ID/name pair. Which column is the ID and
// which is the display name is decided by the caller at ingestion; the
// engine never guesses it from data.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Roster is an ordered set of students keyed by normalized identifier.
type Roster struct {
	students []Student
	index    map[string]int // normalized ID -> position in students
}

// New builds a roster. Blank and duplicate (post-normalization) identifiers
// are rejected outright: a roster that cannot distinguish its students
// poisons every percentage computed downstream.
func New(students []Student) (*Roster, error) {
	r := &Roster{index: make(map[string]int, len(students))}
	for _, s := range students {
		key := Normalize(s.ID)
		if key == "" {
			return nil, fmt.Errorf("roster entry %q has a blank identifier", s.Name)
		}
		if _, dup := r.index[key]; dup {
			return nil, fmt.Errorf("duplicate roster identifier %q", s.ID)
		}
		r.index[key] = len(r.students)
		r.students = append(r.students, s)
	}
	return r, nil
}

// Len reports the number of students on the roster.
func (r *Roster) Len() int { return len(r.students) }

// Students returns the roster in insertion order.
func (r *Roster) Students() []Student { return r.students }

// Lookup resolves an identifier (any case/whitespace) to its student.
func (r *Roster) Lookup(id string) (Student, bool) {
	i, ok := r.index[Normalize(id)]
	if !ok {
		return Student{}, false
	}
	return r.students[i], true
}

// MismatchError reports identifiers present on one side but not the other
// when a roster is validated against a set of grid identifiers.
type MismatchError struct {
	MissingFromRoster []string // in the grid, not on the roster
	MissingFromGrid   []string // on the roster, not in the grid
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("roster mismatch: %d grid identifier(s) not on roster, %d roster identifier(s) not in grid",
		len(e.MissingFromRoster), len(e.MissingFromGrid))
}

// Validate cross-checks the roster against the identifiers found in a grid.
// Any identifier present in only one of the two sources is a hard failure;
// silently skipping would invisibly shrink every denominator downstream.
func (r *Roster) Validate(gridIDs []string) error {
	mismatch := &MismatchError{}
	seen := make(map[string]bool, len(gridIDs))
	for _, id := range gridIDs {
		key := Normalize(id)
		seen[key] = true
		if _, ok := r.index[key]; !ok {
			mismatch.MissingFromRoster = append(mismatch.MissingFromRoster, id)
		}
	}
	for _, s := range r.students {
		if !seen[Normalize(s.ID)] {
			mismatch.MissingFromGrid = append(mismatch.MissingFromGrid, s.ID)
		}
	}
	if len(mismatch.MissingFromRoster) > 0 || len(mismatch.MissingFromGrid) > 0 {
		return mismatch
	}
	return nil
}
