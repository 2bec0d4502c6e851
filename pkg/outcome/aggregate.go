package outcome

// Merge folds per-instrument result sets into one running total. The merge
// is a union over student identifiers: a student absent from one
// instrument's set is carried forward with zero contribution from it, never
// dropped. CLO and student ordering follows first appearance across the
// sets in the order given.
func Merge(sets ...*Set) *Set {
	out := NewSet()
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, st := range s.Students() {
			for _, clo := range s.CLOs() {
				out.Add(st, clo, s.Get(st.ID, clo))
			}
		}
	}
	return out
}
