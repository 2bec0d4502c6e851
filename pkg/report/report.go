// Package report assembles the immutable result objects handed to the
// presentation layer and renders them as plain-text tables for logs and
// inspection. HTML/PDF layout is the collaborating application's job.
package report

import (
	"github.com/acadqa/outcome-engine/internal/numutil"
	"github.com/acadqa/outcome-engine/pkg/grades"
	"github.com/acadqa/outcome-engine/pkg/grid"
	"github.com/acadqa/outcome-engine/pkg/psych"
)

// BucketGroup lists the question labels classified into one bucket.
type BucketGroup struct {
	Bucket psych.Bucket
	Labels []string
}

// Reliability is the full single-instrument analysis result. Produced once
// per run and never mutated; a re-run replaces the whole object.
type Reliability struct {
	KR20         float64
	Verdict      string
	Items        []psych.ItemStat
	Buckets      []BucketGroup
	Totals       []grid.Total
	Distribution grades.Distribution
}

// NewReliability assembles the result object, grouping item
// classifications in the fixed bucket order.
func NewReliability(kr20 float64, verdict string, items []psych.ItemStat, totals []grid.Total, dist grades.Distribution) Reliability {
	byBucket := map[psych.Bucket][]string{}
	for _, it := range items {
		byBucket[it.Bucket] = append(byBucket[it.Bucket], it.Label)
	}
	r := Reliability{
		KR20:         numutil.Round2(kr20),
		Verdict:      verdict,
		Items:        items,
		Totals:       totals,
		Distribution: dist,
	}
	for _, b := range psych.Buckets {
		if labels := byBucket[b]; len(labels) > 0 {
			r.Buckets = append(r.Buckets, BucketGroup{Bucket: b, Labels: labels})
		}
	}
	return r
}
