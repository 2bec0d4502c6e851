package engine

import (
	"fmt"

	"github.com/acadqa/outcome-engine/pkg/outcome"
)

// MismatchReport aggregates every per-instrument mismatch found under
// CollectMismatches. The batch never produces partial results; the full
// list exists so the caller can surface every bad identifier at once.
type MismatchReport struct {
	Batches []*outcome.BatchMismatchError
}

func (e *MismatchReport) Error() string {
	total := 0
	for _, b := range e.Batches {
		total += len(b.IDs)
	}
	return fmt.Sprintf("achievement run aborted: %d unmatched identifier(s) across %d instrument(s)", total, len(e.Batches))
}
