// Package engine wires the pipeline together: raw grid to reliability
// report, and instrument batches to aggregated CLO achievement. It holds no
// state between invocations; every call recomputes from the inputs it is
// handed, and concurrent runs over separate inputs need no coordination.
package engine

import (
	"io"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/acadqa/outcome-engine/pkg/cloconfig"
	"github.com/acadqa/outcome-engine/pkg/grades"
	"github.com/acadqa/outcome-engine/pkg/grid"
	"github.com/acadqa/outcome-engine/pkg/outcome"
	"github.com/acadqa/outcome-engine/pkg/psych"
	"github.com/acadqa/outcome-engine/pkg/report"
	"github.com/acadqa/outcome-engine/pkg/roster"
)

type config struct {
	layout       grid.Layout
	policy       outcome.MismatchPolicy
	thresholds   []int
	directTarget float64
	logger       *log.Logger
}

// Option tunes an Engine.
type Option func(*config)

// WithLayout overrides the answer-grid column layout.
func WithLayout(l grid.Layout) Option { return func(c *config) { c.layout = l } }

// WithMismatchPolicy selects how unmatched identifiers are handled. The
// choice is explicit per engine, never inferred.
func WithMismatchPolicy(p outcome.MismatchPolicy) Option { return func(c *config) { c.policy = p } }

// WithThresholds overrides the benchmark thresholds evaluated by Achievement.
func WithThresholds(ts ...int) Option { return func(c *config) { c.thresholds = ts } }

// WithDirectTarget sets the target percentage direct achievement is compared
// against in rollups.
func WithDirectTarget(t float64) Option { return func(c *config) { c.directTarget = t } }

// WithLogger installs a logger for stage progress and collected mismatches.
// The default logger is silent.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// Engine runs the scoring pipelines.
type Engine struct {
	cfg config
}

// New builds an engine. Defaults: the conventional grid layout, abort on
// the first roster mismatch, thresholds {60,70,80,90}, direct target 80.
func New(opts ...Option) *Engine {
	cfg := config{
		layout:       grid.DefaultLayout(),
		policy:       outcome.AbortOnMismatch,
		thresholds:   outcome.DefaultThresholds,
		directTarget: outcome.DefaultIndirectTarget,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		l := log.New("outcome-engine")
		l.SetOutput(io.Discard)
		l.SetLevel(log.OFF)
		cfg.logger = l
	}
	return &Engine{cfg: cfg}
}

// Reliability runs the single-instrument KR-20 pipeline over a raw cell
// matrix: extraction, roster validation, item statistics, reliability
// coefficient, grade distribution. Structural, roster and degenerate-input
// errors abort the run; no partial report is produced.
func (e *Engine) Reliability(cells [][]string, ros *roster.Roster) (report.Reliability, error) {
	tab, err := grid.Extract(cells, e.cfg.layout)
	if err != nil {
		return report.Reliability{}, errors.Wrap(err, "extract grid")
	}
	if err := tab.Validate(ros); err != nil {
		return report.Reliability{}, errors.Wrap(err, "validate roster")
	}

	items := psych.ItemStats(tab)
	totals := tab.Totals()
	raw := make([]float64, len(totals))
	percents := make([]float64, len(totals))
	for i, t := range totals {
		raw[i] = float64(t.Correct)
		percents[i] = t.Percent()
	}

	variance, err := psych.Variance(raw)
	if err != nil {
		return report.Reliability{}, err
	}
	kr, err := psych.KR20(tab.Key.Len(), psych.SumPQ(items), variance)
	if err != nil {
		return report.Reliability{}, err
	}

	rep := report.NewReliability(kr, psych.VerdictFor(kr), items, totals, grades.Distribute(percents))
	e.cfg.logger.Infof("reliability run: %d question(s), %d student(s), KR-20 %.2f", tab.Key.Len(), len(totals), kr)
	return rep, nil
}

// InstrumentData pairs an instrument's configuration with its raw
// performance: *grid.Table for keyed mode, []outcome.BinaryRow for binary,
// []outcome.AggregateRow for aggregate.
type InstrumentData struct {
	Instrument  cloconfig.Instrument
	Performance interface{}
}

// AchievementResult is the aggregated outcome of one achievement run.
type AchievementResult struct {
	Results    *outcome.Set
	Benchmarks [][]outcome.AchievementRow // one slice per configured threshold
}

// Achievement scores every instrument, merges the per-instrument results
// into one per-student per-CLO total, and evaluates the configured
// benchmark thresholds. Under CollectMismatches every unmatched identifier
// across the whole batch is reported before the run fails; under
// AbortOnMismatch the first one fails it.
func (e *Engine) Achievement(ros *roster.Roster, batch []InstrumentData) (AchievementResult, error) {
	if len(batch) == 0 {
		return AchievementResult{}, &cloconfig.ConfigurationError{Reason: "no instruments supplied"}
	}

	sets := make([]*outcome.Set, 0, len(batch))
	var mismatches []*outcome.BatchMismatchError
	for _, in := range batch {
		set, err := outcome.ScoreInstrument(in.Instrument, ros, in.Performance, e.cfg.policy)
		if err != nil {
			var batchErr *outcome.BatchMismatchError
			if e.cfg.policy == outcome.CollectMismatches && errors.As(err, &batchErr) {
				for _, id := range batchErr.IDs {
					e.cfg.logger.Warnf("instrument %q: identifier %q not on roster", batchErr.Instrument, id)
				}
				mismatches = append(mismatches, batchErr)
				continue
			}
			return AchievementResult{}, errors.Wrapf(err, "score instrument %q", in.Instrument.Name)
		}
		sets = append(sets, set)
	}
	if len(mismatches) > 0 {
		return AchievementResult{}, &MismatchReport{Batches: mismatches}
	}

	merged := outcome.Merge(sets...)
	res := AchievementResult{
		Results:    merged,
		Benchmarks: outcome.AchievementAll(merged, e.cfg.thresholds...),
	}
	e.cfg.logger.Infof("achievement run: %d instrument(s), %d student(s), %d CLO(s)",
		len(batch), merged.Len(), len(merged.CLOs()))
	return res, nil
}

// Rollup groups CLO achievement (at one benchmark) into outcome categories.
func (e *Engine) Rollup(gm cloconfig.GroupMap, achieved []outcome.AchievementRow, indirect map[string]float64) ([]outcome.RollupRow, error) {
	return outcome.Rollup(gm, achieved, indirect, e.cfg.directTarget)
}
