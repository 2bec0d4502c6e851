package outcome_test

import (
	"errors"
	"math"
	"testing"

	"github.com/acadqa/outcome-engine/pkg/cloconfig"
	"github.com/acadqa/outcome-engine/pkg/grid"
	"github.com/acadqa/outcome-engine/pkg/outcome"
	"github.com/acadqa/outcome-engine/pkg/roster"
)

func testRoster(t *testing.T, ids ...string) *roster.Roster {
	t.Helper()
	students := make([]roster.Student, len(ids))
	for i, id := range ids {
		students[i] = roster.Student{ID: id, Name: "Student " + id}
	}
	r, err := roster.New(students)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	return r
}

func splitInstrument() cloconfig.Instrument {
	return cloconfig.Instrument{
		Name:   "quiz1",
		Mode:   cloconfig.ModeKeyed,
		Weight: 10,
		CLOs: []cloconfig.CLOQuestions{
			{CLO: "CLO1", Questions: []int{1, 2}},
			{CLO: "CLO2", Questions: []int{3}},
		},
	}
}

func threeQuestionTable(t *testing.T) *grid.Table {
	t.Helper()
	cells := [][]string{
		{"Name", "ID", "Q1", "Q2", "Q3"},
		{"", "", "A", "B", "C"},
		{"Amina", "s1", "A", "B", "D"}, // Q1, Q2 correct
		{"Bilal", "s2", "A", "C", "C"}, // Q1, Q3 correct
	}
	tab, err := grid.Extract(cells, grid.Layout{IDColumn: 1, NameColumn: 0, AnswerStart: 2})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	return tab
}

func TestScoreKeyedWeightSplit(t *testing.T) {
	ros := testRoster(t, "s1", "s2")
	set, err := outcome.ScoreInstrument(splitInstrument(), ros, threeQuestionTable(t), outcome.AbortOnMismatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// marksPerQuestion = 10/3; CLO1 possible 6.67, CLO2 possible 3.33.
	r1 := set.Get("s1", "CLO1")
	if r1.MarksPossible != 6.67 {
		t.Fatalf("CLO1 possible: got %v, want 6.67", r1.MarksPossible)
	}
	if r1.MarksScored != 6.67 || r1.CorrectCount != 2 {
		t.Fatalf("s1 CLO1: %+v", r1)
	}
	r2 := set.Get("s1", "CLO2")
	if r2.MarksPossible != 3.33 || r2.MarksScored != 0 {
		t.Fatalf("s1 CLO2: %+v", r2)
	}

	// Sum of marksPossible across CLOs equals the weight within rounding
	// tolerance of 0.01 per CLO, for every student.
	for _, st := range set.Students() {
		sum := 0.0
		for _, clo := range set.CLOs() {
			sum += set.Get(st.ID, clo).MarksPossible
		}
		if math.Abs(sum-10) > 0.01*float64(len(set.CLOs())) {
			t.Fatalf("student %s: possible sums to %v, want ~10", st.ID, sum)
		}
	}
}

func TestScoreBinaryMatrix(t *testing.T) {
	ros := testRoster(t, "s1")
	inst := splitInstrument()
	inst.Mode = cloconfig.ModeBinary
	rows := []outcome.BinaryRow{{ID: "S1 ", Name: "Amina", Values: []string{"1", "0", "1"}}}

	set, err := outcome.ScoreInstrument(inst, ros, rows, outcome.AbortOnMismatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r1 := set.Get("s1", "CLO1")
	if r1.CorrectCount != 1 || r1.MarksScored != 3.33 {
		t.Fatalf("CLO1: %+v", r1)
	}
	r2 := set.Get("s1", "CLO2")
	if r2.CorrectCount != 1 || r2.MarksScored != 3.33 {
		t.Fatalf("CLO2: %+v", r2)
	}
}

func TestScoreAggregateDistributesProportionally(t *testing.T) {
	ros := testRoster(t, "s1")
	inst := splitInstrument()
	inst.Mode = cloconfig.ModeAggregate
	rows := []outcome.AggregateRow{{ID: "s1", Name: "Amina", Score: 9}}

	set, err := outcome.ScoreInstrument(inst, ros, rows, outcome.AbortOnMismatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Get("s1", "CLO1").MarksScored; got != 6 {
		t.Fatalf("CLO1 share of 9: got %v, want 6", got)
	}
	if got := set.Get("s1", "CLO2").MarksScored; got != 3 {
		t.Fatalf("CLO2 share of 9: got %v, want 3", got)
	}
}

func TestScoreWrongShapeForMode(t *testing.T) {
	ros := testRoster(t, "s1")
	inst := splitInstrument() // keyed
	if _, err := outcome.ScoreInstrument(inst, ros, []outcome.BinaryRow{}, outcome.AbortOnMismatch); err == nil {
		t.Fatalf("expected shape error for keyed mode fed a binary matrix")
	}
}

func TestScoreOutOfRangeQuestion(t *testing.T) {
	ros := testRoster(t, "s1", "s2")
	inst := splitInstrument()
	inst.CLOs[1].Questions = []int{4} // table has 3 questions
	_, err := outcome.ScoreInstrument(inst, ros, threeQuestionTable(t), outcome.AbortOnMismatch)
	var ce *cloconfig.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

func TestMismatchAbortPolicy(t *testing.T) {
	ros := testRoster(t, "s1") // s2 missing
	_, err := outcome.ScoreInstrument(splitInstrument(), ros, threeQuestionTable(t), outcome.AbortOnMismatch)
	var nf *outcome.StudentNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *StudentNotFoundError, got %v", err)
	}
	if nf.ID != "s2" {
		t.Fatalf("unmatched id: got %q", nf.ID)
	}
}

func TestMismatchCollectPolicy(t *testing.T) {
	ros := testRoster(t, "s3") // neither grid student matches
	_, err := outcome.ScoreInstrument(splitInstrument(), ros, threeQuestionTable(t), outcome.CollectMismatches)
	var batch *outcome.BatchMismatchError
	if !errors.As(err, &batch) {
		t.Fatalf("expected *BatchMismatchError, got %v", err)
	}
	if len(batch.IDs) != 2 {
		t.Fatalf("collected ids: %v", batch.IDs)
	}
}

func TestMergeUnionAndIdentity(t *testing.T) {
	ros := testRoster(t, "s1", "s2")
	setA, err := outcome.ScoreInstrument(splitInstrument(), ros, threeQuestionTable(t), outcome.AbortOnMismatch)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	alone := outcome.Merge(setA)
	withEmpty := outcome.Merge(setA, outcome.NewSet())
	for _, st := range alone.Students() {
		for _, clo := range alone.CLOs() {
			if alone.Get(st.ID, clo) != withEmpty.Get(st.ID, clo) {
				t.Fatalf("merging an empty set changed %s/%s", st.ID, clo)
			}
		}
	}

	// A second instrument covering only s1 and CLO2: s2 is carried forward
	// with zero contribution from it, not dropped.
	inst2 := cloconfig.Instrument{
		Name:   "viva",
		Mode:   cloconfig.ModeAggregate,
		Weight: 5,
		CLOs:   []cloconfig.CLOQuestions{{CLO: "CLO2", Questions: []int{1}}},
	}
	setB, err := outcome.ScoreInstrument(inst2, ros, []outcome.AggregateRow{{ID: "s1", Score: 5}}, outcome.AbortOnMismatch)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	merged := outcome.Merge(setA, setB)
	if merged.Len() != 2 {
		t.Fatalf("union should keep both students, got %d", merged.Len())
	}
	s1 := merged.Get("s1", "CLO2")
	if s1.MarksPossible != 8.33 || s1.MarksScored != 5 {
		t.Fatalf("s1 CLO2 after merge: %+v", s1)
	}
	s2 := merged.Get("s2", "CLO2")
	if s2.MarksPossible != 3.33 {
		t.Fatalf("s2 CLO2 after merge: %+v", s2)
	}
}

func fiveStudentSet() *outcome.Set {
	set := outcome.NewSet()
	scores := []float64{10, 8, 6, 4, 2} // percentages 100, 80, 60, 40, 20
	for i, sc := range scores {
		st := roster.Student{ID: string(rune('a' + i))}
		set.Add(st, "CLO1", outcome.Result{MarksScored: sc, MarksPossible: 10})
	}
	return set
}

func TestAchievementScenario(t *testing.T) {
	rows := outcome.Achievement(fiveStudentSet(), 60)
	if len(rows) != 1 {
		t.Fatalf("rows: %d", len(rows))
	}
	row := rows[0]
	if row.Cutoff != 6 {
		t.Fatalf("cutoff: got %v, want 6", row.Cutoff)
	}
	if row.AchievingCount != 3 || row.PercentAchieving != 60 {
		t.Fatalf("achievement: %+v", row)
	}
	if row.CutoffGrade != "C" {
		t.Fatalf("grade at 60%%: got %s, want C", row.CutoffGrade)
	}
}

func TestAchievementMonotonicInThreshold(t *testing.T) {
	set := fiveStudentSet()
	prev := math.Inf(1)
	for _, rows := range outcome.AchievementAll(set, 60, 70, 80, 90) {
		p := rows[0].PercentAchieving
		if p > prev {
			t.Fatalf("achievement increased with threshold: %v > %v", p, prev)
		}
		prev = p
	}
}

func TestAchievementEmptySet(t *testing.T) {
	rows := outcome.Achievement(outcome.NewSet(), 60)
	if len(rows) != 0 {
		t.Fatalf("empty set should produce no rows, got %d", len(rows))
	}
}

func TestDeviationComment(t *testing.T) {
	if got := outcome.DeviationComment(80, 80); got != "actual achievement equals the target" {
		t.Fatalf("equal: %q", got)
	}
	if got := outcome.DeviationComment(85.26, 80); got != "actual is greater than target by 5.3%" {
		t.Fatalf("greater: %q", got)
	}
	if got := outcome.DeviationComment(72.5, 80); got != "actual is less than target by 7.5%" {
		t.Fatalf("less: %q", got)
	}
}

func TestRollup(t *testing.T) {
	achieved := []outcome.AchievementRow{
		{CLO: "CLO1", PercentAchieving: 90},
		{CLO: "CLO2", PercentAchieving: 70},
	}
	gm := cloconfig.GroupMap{Groups: []cloconfig.Group{
		{Name: "knowledge", CLOs: []string{"CLO1"}},
		{Name: "skills", CLOs: []string{"CLO2"}},
	}}
	rows, err := outcome.Rollup(gm, achieved, map[string]float64{"CLO1": 80}, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: %d", len(rows))
	}
	if rows[0].DirectComment != "actual is greater than target by 10.0%" {
		t.Fatalf("direct comment: %q", rows[0].DirectComment)
	}
	if rows[0].IndirectComment != "actual achievement equals the target" {
		t.Fatalf("indirect comment: %q", rows[0].IndirectComment)
	}
	// CLO2 has no indirect figure; it reads as zero against the 80 target.
	if rows[1].IndirectComment != "actual is less than target by 80.0%" {
		t.Fatalf("missing indirect comment: %q", rows[1].IndirectComment)
	}

	bad := cloconfig.GroupMap{Groups: []cloconfig.Group{{Name: "values", CLOs: []string{"CLO9"}}}}
	var ce *cloconfig.ConfigurationError
	if _, err := outcome.Rollup(bad, achieved, nil, 80); !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}
