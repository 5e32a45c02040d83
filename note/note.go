package note

import (
	"fmt"
	"math"

	"github.com/jsphweid/chartpak/constants"
	"github.com/jsphweid/chartpak/model"
)

// PosRound rounds pos, measured in units of crochet, half-up to the nearest grid unit.
func PosRound(pos float64, crochet float64) float64 {
	return math.Floor(pos/crochet + 0.5)
}

// Quantize converts a time in ms to quarter steps.
func Quantize(time float64, stepCrochet float64) float64 {
	return PosRound(time*4.0, stepCrochet)
}

// SustainTicks is the index of the last sustain tick for a hold of sustain ms,
// or -1 when the hold is too short to produce any.
func SustainTicks(sustain float64, stepCrochet float64) int {
	return int(PosRound(sustain, stepCrochet)) - 1
}

// ApplyOpponent toggles the opponent bit. A raw type that already carries the bit
// in an opponent section ends up without it.
func ApplyOpponent(t model.NoteFlag, opponent bool) model.NoteFlag {
	if opponent {
		return t ^ model.NoteFlagOpponent
	}
	return t
}

// Expand quantizes one section's notes, emitting each main note followed by its
// sustain ticks, one per step.
func Expand(raw []model.RawNote, opponent bool, stepCrochet float64) ([]model.Note, error) {
	if !finite(stepCrochet) || stepCrochet <= 0 {
		return nil, model.Malformed("step_crochet", "%v is not a positive finite duration", stepCrochet)
	}

	var res []model.Note
	for i, n := range raw {
		notes, err := expandNote(n, opponent, stepCrochet)
		if err != nil {
			return nil, model.WithinField(err, fmt.Sprintf("sectionNotes.%d", i))
		}
		res = append(res, notes...)
	}
	return res, nil
}

func expandNote(n model.RawNote, opponent bool, stepCrochet float64) ([]model.Note, error) {
	if !finite(n.Time) || n.Time < 0 {
		return nil, model.Malformed("0", "time %v is not a finite non-negative number", n.Time)
	}
	if !finite(n.Sustain) || n.Sustain < 0 {
		return nil, model.Malformed("2", "sustain length %v is not a finite non-negative number", n.Sustain)
	}

	pos := Quantize(n.Time, stepCrochet)
	if pos >= constants.Sentinel {
		return nil, model.Malformed("0", "time %v lands on grid position %v, past the end of the chart", n.Time, pos)
	}

	main := model.Note{
		Pos:  uint16(pos),
		Type: ApplyOpponent(model.NoteFlag(n.Type), opponent),
	}

	// bound the tick count before it is converted to an int
	if last := PosRound(n.Sustain, stepCrochet) - 1; last >= 0 && pos+last*4 >= constants.Sentinel {
		return nil, model.Malformed("2", "sustain length %v runs past the end of the chart", n.Sustain)
	}
	sustain := SustainTicks(n.Sustain, stepCrochet)

	res := make([]model.Note, 0, sustain+2)
	res = append(res, main)
	for k := 0; k <= sustain; k++ {
		sus := model.Note{
			Pos:  main.Pos + uint16(k*4),
			Type: main.Type | model.NoteFlagSustain,
		}
		if k == sustain {
			sus.Type |= model.NoteFlagSustainEnd
		}
		res = append(res, sus)
	}
	return res, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
