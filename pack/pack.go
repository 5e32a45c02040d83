package pack

import (
	"fmt"

	"github.com/jsphweid/chartpak/model"
	"github.com/jsphweid/chartpak/note"
	"github.com/jsphweid/chartpak/section"
	"github.com/jsphweid/chartpak/sequence"
	"github.com/jsphweid/chartpak/tempo"
)

// Convert runs a parsed chart through the whole pipeline: quantize, encode sections,
// expand notes, sort, then terminate both tables.
func Convert(song model.RawSong) (model.Chart, error) {
	var c model.Chart

	if len(song.Sections) == 0 {
		return c, model.Malformed("song.notes", "chart has no sections")
	}

	t, err := tempo.Calculate(song.Bpm)
	if err != nil {
		return c, err
	}

	sections := section.Encode(song.Sections)

	var notes []model.Note
	for i, s := range song.Sections {
		expanded, err := note.Expand(s.Notes, section.IsOpponent(s), t.StepCrochet)
		if err != nil {
			return c, model.WithinField(err, fmt.Sprintf("song.notes.%d", i))
		}
		notes = append(notes, expanded...)
	}

	c.Sections, c.Notes = sequence.Terminate(sections, sequence.Sort(notes))
	return c, nil
}

// Summarize counts what a packed chart holds. The sentinel note is not counted.
func Summarize(name string, bpm float64, c model.Chart) model.ChartSummary {
	s := model.ChartSummary{
		Name:        name,
		Bpm:         bpm,
		NumSections: len(c.Sections),
		NumBytes:    Size(c),
	}
	for _, n := range c.Notes {
		if n == sequence.Sentinel() {
			break
		}
		s.NumNotes++
		if n.IsSustain() {
			s.NumSustains++
		}
		if n.Type.Has(model.NoteFlagOpponent) {
			s.NumOpponent++
		}
		s.LastPos = n.Pos
	}
	return s
}
