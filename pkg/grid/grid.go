// Package grid turns a raw answer-grid (header row, answer-key row, one row
// per student) into typed records: the question key, per-student answers and
// per-student totals.
package grid

import (
	"fmt"
	"strings"

	"github.com/acadqa/outcome-engine/pkg/roster"
)

// Layout names the fixed columns of an answer grid. The ID/name pairing is
// explicit so the engine never has to guess which column is semantically the
// identifier.
type Layout struct {
	IDColumn    int
	NameColumn  int
	AnswerStart int // first column that may hold a question label
}

// DefaultLayout matches the upload convention of the collaborating
// application: name in column 0, ID in column 1, answers from column 6.
func DefaultLayout() Layout {
	return Layout{IDColumn: 1, NameColumn: 0, AnswerStart: 6}
}

// MalformedGridError reports a structural defect in the raw grid. Structural
// defects abort the whole run: statistics over a truncated or misaligned
// grid are actively misleading.
type MalformedGridError struct {
	Reason string
}

func (e *MalformedGridError) Error() string {
	return "malformed answer grid: " + e.Reason
}

// Key maps question labels to their correct answer, case-normalized.
// Built once per grid and immutable afterwards.
type Key struct {
	labels  []string
	answers map[string]string
}

// Labels returns question labels in grid column order.
func (k *Key) Labels() []string { return k.labels }

// Len reports the number of questions in the key.
func (k *Key) Len() int { return len(k.labels) }

// Answer returns the normalized correct answer for a label.
func (k *Key) Answer(label string) (string, bool) {
	a, ok := k.answers[label]
	return a, ok
}

// StudentRow is one student's raw answers, aligned with Key.Labels.
type StudentRow struct {
	ID      string
	Name    string
	Answers []string
}

// Correct reports whether the answer at question index i matches the key.
func (r StudentRow) Correct(k *Key, i int) bool {
	if i < 0 || i >= len(k.labels) || i >= len(r.Answers) {
		return false
	}
	return normalizeAnswer(r.Answers[i]) == k.answers[k.labels[i]]
}

// Total is a student's raw score over the whole grid.
type Total struct {
	ID       string
	Name     string
	Correct  int
	Possible int
}

// Percent is the total as a percentage; zero possible yields zero.
func (t Total) Percent() float64 {
	if t.Possible == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Possible) * 100
}

// Table is the typed form of one answer grid.
type Table struct {
	Key  *Key
	Rows []StudentRow
}

const questionPrefix = "q"

// Extract parses the raw cell matrix. Row 0 is the header, row 1 the answer
// key, rows >= 2 one student each. Header columns before lay.AnswerStart and
// header cells not carrying the question prefix are skipped.
func Extract(cells [][]string, lay Layout) (*Table, error) {
	if len(cells) < 3 {
		return nil, &MalformedGridError{Reason: fmt.Sprintf("need header, key and at least one student row; got %d row(s)", len(cells))}
	}
	header, keyRow := cells[0], cells[1]
	if len(header) != len(keyRow) {
		return nil, &MalformedGridError{Reason: fmt.Sprintf("header has %d column(s) but answer key has %d", len(header), len(keyRow))}
	}
	if lay.AnswerStart < 0 || lay.AnswerStart >= len(header) {
		return nil, &MalformedGridError{Reason: fmt.Sprintf("answer start column %d outside header of width %d", lay.AnswerStart, len(header))}
	}

	key := &Key{answers: map[string]string{}}
	cols := make([]int, 0, len(header)-lay.AnswerStart)
	for c := lay.AnswerStart; c < len(header); c++ {
		label := strings.TrimSpace(header[c])
		if !strings.HasPrefix(strings.ToLower(label), questionPrefix) {
			continue
		}
		if _, dup := key.answers[label]; dup {
			return nil, &MalformedGridError{Reason: fmt.Sprintf("duplicate question label %q", label)}
		}
		key.labels = append(key.labels, label)
		key.answers[label] = normalizeAnswer(keyRow[c])
		cols = append(cols, c)
	}
	if len(key.labels) == 0 {
		return nil, &MalformedGridError{Reason: "no question columns found after answer start column"}
	}

	t := &Table{Key: key}
	for i, row := range cells[2:] {
		if len(row) <= lay.IDColumn || len(row) <= lay.NameColumn {
			return nil, &MalformedGridError{Reason: fmt.Sprintf("student row %d too short for id/name columns", i+2)}
		}
		sr := StudentRow{
			ID:      strings.TrimSpace(row[lay.IDColumn]),
			Name:    strings.TrimSpace(row[lay.NameColumn]),
			Answers: make([]string, len(cols)),
		}
		for j, c := range cols {
			if c < len(row) {
				sr.Answers[j] = strings.TrimSpace(row[c])
			}
		}
		t.Rows = append(t.Rows, sr)
	}
	return t, nil
}

// IDs returns the raw student identifiers in row order, for roster
// cross-validation.
func (t *Table) IDs() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.ID
	}
	return out
}

// Totals scores every row against the key.
func (t *Table) Totals() []Total {
	out := make([]Total, 0, len(t.Rows))
	for _, r := range t.Rows {
		tot := Total{ID: r.ID, Name: r.Name, Possible: t.Key.Len()}
		for i := range t.Key.Labels() {
			if r.Correct(t.Key, i) {
				tot.Correct++
			}
		}
		out = append(out, tot)
	}
	return out
}

// Validate cross-checks row identifiers against the roster.
func (t *Table) Validate(r *roster.Roster) error {
	return r.Validate(t.IDs())
}

func normalizeAnswer(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
