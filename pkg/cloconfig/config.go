// Package cloconfig models the CLO configuration supplied by the
// collaborating application: assessment instruments with their weights and
// CLO-to-question mappings, plus the static outcome-group map used for
// rollups.
package cloconfig

import "fmt"

// Mode selects how an instrument's raw performance is scored. It is an
// explicit enum; the scorer never sniffs the shape of its input.
type Mode string

const (
	// ModeKeyed compares student answers against an answer key.
	ModeKeyed Mode = "keyed"
	// ModeBinary consumes a pre-scored 1/0 matrix; no key comparison.
	ModeBinary Mode = "binary"
	// ModeAggregate consumes one total mark per student and distributes it
	// across CLOs proportionally to their share of the mapped questions.
	ModeAggregate Mode = "aggregate"
)

func (m Mode) valid() bool {
	switch m {
	case ModeKeyed, ModeBinary, ModeAggregate:
		return true
	}
	return false
}

// ConfigurationError reports an inconsistency in the supplied configuration.
// Configuration errors abort the entire run; no partial report is produced.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// CLOQuestions maps one CLO to the 1-based question numbers it covers
// within an instrument.
type CLOQuestions struct {
	CLO       string
	Questions []int
}

// Instrument is one assessment event contributing marks toward CLOs.
type Instrument struct {
	Name   string
	Mode   Mode
	Weight float64        // total marks the instrument is worth
	CLOs   []CLOQuestions // insertion order is the report order
}

// QuestionCount is the total number of mapped questions across all CLOs.
// The CLO question sets are treated as a partition for mark redistribution.
func (i Instrument) QuestionCount() int {
	n := 0
	for _, c := range i.CLOs {
		n += len(c.Questions)
	}
	return n
}

// CLOIDs returns the instrument's CLO identifiers in insertion order.
func (i Instrument) CLOIDs() []string {
	out := make([]string, len(i.CLOs))
	for j, c := range i.CLOs {
		out[j] = c.CLO
	}
	return out
}

// Validate checks the instrument against the number of questions the
// instrument actually has. maxQuestion <= 0 skips the range check, for
// aggregate-mode instruments whose pseudo-questions have no grid backing.
func (i Instrument) Validate(maxQuestion int) error {
	if i.Name == "" {
		return &ConfigurationError{Reason: "instrument has no name"}
	}
	if !i.Mode.valid() {
		return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: unknown mode %q", i.Name, i.Mode)}
	}
	if i.Weight <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: weight must be positive, got %v", i.Name, i.Weight)}
	}
	if len(i.CLOs) == 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: no CLOs mapped", i.Name)}
	}
	seen := map[string]bool{}
	for _, c := range i.CLOs {
		if c.CLO == "" {
			return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: CLO with empty id", i.Name)}
		}
		if seen[c.CLO] {
			return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: CLO %q mapped twice", i.Name, c.CLO)}
		}
		seen[c.CLO] = true
		if len(c.Questions) == 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: CLO %q maps no questions", i.Name, c.CLO)}
		}
		for _, q := range c.Questions {
			if q < 1 {
				return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: CLO %q references question %d", i.Name, c.CLO, q)}
			}
			if maxQuestion > 0 && q > maxQuestion {
				return &ConfigurationError{Reason: fmt.Sprintf("instrument %q: CLO %q references question %d but the instrument has %d", i.Name, c.CLO, q, maxQuestion)}
			}
		}
	}
	return nil
}

// Group is one outcome category (knowledge/skills/values, or a PLO code)
// with the CLOs that roll up into it.
type Group struct {
	Name string
	CLOs []string
}

// GroupMap is the static CLO-to-group mapping for rollups. It is a required
// input and assumed complete; referencing an unknown CLO is a
// ConfigurationError, never a silent omission.
type GroupMap struct {
	Groups []Group
}

// Validate checks every referenced CLO against the set of CLOs known to the
// instruments.
func (g GroupMap) Validate(knownCLOs []string) error {
	if len(g.Groups) == 0 {
		return &ConfigurationError{Reason: "outcome group map is empty"}
	}
	known := make(map[string]bool, len(knownCLOs))
	for _, c := range knownCLOs {
		known[c] = true
	}
	for _, grp := range g.Groups {
		if grp.Name == "" {
			return &ConfigurationError{Reason: "outcome group with empty name"}
		}
		for _, c := range grp.CLOs {
			if !known[c] {
				return &ConfigurationError{Reason: fmt.Sprintf("group %q references CLO %q which no instrument maps", grp.Name, c)}
			}
		}
	}
	return nil
}
