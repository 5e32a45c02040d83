package sequence

import (
	"sort"

	"github.com/jsphweid/chartpak/constants"
	"github.com/jsphweid/chartpak/model"
)

// Less orders notes by position, putting a hit before any sustain tick at the same spot.
// A sustain from one hold can land where the next main note starts.
func Less(a model.Note, b model.Note) bool {
	if a.Pos != b.Pos {
		return a.Pos < b.Pos
	}
	return b.IsSustain() && !a.IsSustain()
}

// Sort returns a sorted copy of notes. Notes that compare equal keep their input order,
// so a chart always packs to the same bytes.
func Sort(notes []model.Note) []model.Note {
	res := make([]model.Note, len(notes))
	copy(res, notes)
	sort.SliceStable(res, func(i, j int) bool {
		return Less(res[i], res[j])
	})
	return res
}

// Sentinel is the note the engine scans for to find the end of the note table.
func Sentinel() model.Note {
	return model.Note{Pos: constants.Sentinel, Type: model.NoteFlagHit}
}

// Terminate returns copies of both tables with the last section's end replaced by the
// sentinel and a sentinel note appended. The real final boundary is dropped.
func Terminate(sections []model.Section, notes []model.Note) ([]model.Section, []model.Note) {
	outSections := make([]model.Section, len(sections))
	copy(outSections, sections)
	if len(outSections) > 0 {
		outSections[len(outSections)-1].End = constants.Sentinel
	}

	outNotes := make([]model.Note, len(notes), len(notes)+1)
	copy(outNotes, notes)
	outNotes = append(outNotes, Sentinel())

	return outSections, outNotes
}
