package section

import "github.com/jsphweid/chartpak/model"

// IsOpponent reports whether the section belongs to the opponent. mustHitSection is
// true when the player has the focus, so the opponent owns every other section.
func IsOpponent(s model.RawSection) bool {
	return !s.MustHitSection
}

func Flag(s model.RawSection) model.SectionFlag {
	var flag model.SectionFlag
	if s.AltAnim {
		flag |= model.SectionFlagAltAnim
	}
	if IsOpponent(s) {
		flag |= model.SectionFlagOppFocus
	}
	return flag
}

// Encode builds the section table in document order. Each end is the running total of
// lengthInSteps, accumulated in 16 bits like the engine reads it.
func Encode(raw []model.RawSection) []model.Section {
	res := make([]model.Section, 0, len(raw))
	var acc uint16
	for _, s := range raw {
		acc += s.LengthInSteps
		res = append(res, model.Section{End: acc, Flag: Flag(s)})
	}
	return res
}
