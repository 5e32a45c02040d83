package tempo

import (
	"math"

	"github.com/jsphweid/chartpak/model"
)

type Tempo struct {
	Bpm         float64
	Crochet     float64 // ms per beat
	StepCrochet float64 // ms per step (a quarter beat)
}

// Calculate derives the quantization units for bpm. A bpm that is not a positive finite
// number has no meaningful grid and is reported as a malformed chart.
func Calculate(bpm float64) (Tempo, error) {
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0 {
		return Tempo{}, model.Malformed("song.bpm", "%v is not a positive finite tempo", bpm)
	}
	crochet := (60.0 / bpm) * 1000.0
	return Tempo{
		Bpm:         bpm,
		Crochet:     crochet,
		StepCrochet: crochet / 4,
	}, nil
}
