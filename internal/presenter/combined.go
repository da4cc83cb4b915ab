package presenter

// CombinedSet is the derived pairing of slides for original-only display.
// Consecutive slides sharing the same non-empty verse type are paired into a
// single navigable unit of two; a lone unpaired slide is a unit of one. Runs
// longer than two become pairs plus a trailing singleton.
type CombinedSet struct {
	// Units[i] lists the original slide indices of combined unit i.
	Units [][]int
	// OriginalToCombined maps an original slide index to its unit index.
	OriginalToCombined []int
}

// BuildCombinedSet derives the combined units for a slide sequence.
// Recomputed whenever the current item or display mode changes.
func BuildCombinedSet(slides []Slide) *CombinedSet {
	cs := &CombinedSet{
		OriginalToCombined: make([]int, len(slides)),
	}
	for i := 0; i < len(slides); {
		unit := []int{i}
		if i+1 < len(slides) &&
			slides[i].VerseType != "" &&
			slides[i].VerseType == slides[i+1].VerseType {
			unit = append(unit, i+1)
		}
		for _, orig := range unit {
			cs.OriginalToCombined[orig] = len(cs.Units)
		}
		cs.Units = append(cs.Units, unit)
		i += len(unit)
	}
	return cs
}

// Len returns the number of combined units.
func (cs *CombinedSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Units)
}

// Indices returns the original slide indices of unit i, or nil when out of
// range.
func (cs *CombinedSet) Indices(i int) []int {
	if cs == nil || i < 0 || i >= len(cs.Units) {
		return nil
	}
	return cs.Units[i]
}

// UnitOf returns the unit index containing original slide index orig,
// or -1 when out of range.
func (cs *CombinedSet) UnitOf(orig int) int {
	if cs == nil || orig < 0 || orig >= len(cs.OriginalToCombined) {
		return -1
	}
	return cs.OriginalToCombined[orig]
}
