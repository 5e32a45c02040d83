package tempo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tm, err := Calculate(100)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.InDelta(600.0, tm.Crochet, 1e-9)
	assert.InDelta(150.0, tm.StepCrochet, 1e-9)
}

func TestCalculateFractionalBpm(t *testing.T) {
	tm, err := Calculate(150)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, tm.Crochet, 1e-9)
	assert.InDelta(t, 100.0, tm.StepCrochet, 1e-9)
}

func TestRejectsUnusableBpm(t *testing.T) {
	for _, bpm := range []float64{0, -120, math.NaN(), math.Inf(1)} {
		_, err := Calculate(bpm)
		assert.Error(t, err, "bpm %v", bpm)
	}
}
