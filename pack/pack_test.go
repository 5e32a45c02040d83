package pack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/chartpak/chart"
	"github.com/jsphweid/chartpak/model"
)

func singleNoteSong(mustHit bool) model.RawSong {
	return model.RawSong{
		Bpm:   100,
		Speed: 1,
		Sections: []model.RawSection{{
			MustHitSection: mustHit,
			LengthInSteps:  4,
			Notes:          []model.RawNote{{Time: 0, Type: 1, Sustain: 0}},
		}},
	}
}

func TestPlayerSectionScenario(t *testing.T) {
	c, err := Convert(singleNoteSong(true))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Section{{End: 0xFFFF, Flag: 0}}, c.Sections)
	assert.Equal([]model.Note{{Pos: 0, Type: 1}, {Pos: 0xFFFF, Type: model.NoteFlagHit}}, c.Notes)

	dat, err := Bytes(c)
	require.NoError(t, err)
	assert.Equal([]byte{
		0x06, 0x00,
		0xFF, 0xFF, 0x00, 0x00,
		0x00, 0x00, 0x01, 0x00,
		0xFF, 0xFF, 0x80, 0x00,
	}, dat)
}

func TestOpponentSectionScenario(t *testing.T) {
	c, err := Convert(singleNoteSong(false))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.True(c.Sections[0].Flag.Has(model.SectionFlagOppFocus))
	assert.Equal(model.NoteFlag(1)^model.NoteFlagOpponent, c.Notes[0].Type)
}

func TestSectionEndsBeforeTermination(t *testing.T) {
	song := singleNoteSong(true)
	song.Sections = append(song.Sections,
		model.RawSection{MustHitSection: true, LengthInSteps: 16},
		model.RawSection{MustHitSection: false, LengthInSteps: 16},
	)

	c, err := Convert(song)
	require.NoError(t, err)
	assert.Equal(t, []model.Section{
		{End: 4},
		{End: 20},
		{End: 0xFFFF, Flag: model.SectionFlagOppFocus},
	}, c.Sections)
}

const holdIntoHit = `{"song": {"bpm": 100, "speed": 1, "notes": [
	{"mustHitSection": true, "lengthInSteps": 16, "sectionNotes": [[0, 0, 300]]},
	{"mustHitSection": false, "alt_anim": true, "lengthInSteps": 16, "sectionNotes": [[150, 1, 0]]}
]}}`

func TestPacksChartBytes(t *testing.T) {
	song, err := chart.Parse([]byte(holdIntoHit))
	require.NoError(t, err)
	c, err := Convert(song)
	require.NoError(t, err)
	dat, err := Bytes(c)
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x0A, 0x00,
		0x10, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0x03, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x08, 0x00,
		0x04, 0x00, 0x05, 0x00, // the opponent's hit sorts before the hold's last tick
		0x04, 0x00, 0x18, 0x00,
		0xFF, 0xFF, 0x80, 0x00,
	}, dat)
}

func TestConvertIsRepeatable(t *testing.T) {
	song, err := chart.Parse([]byte(holdIntoHit))
	require.NoError(t, err)

	first, err := Convert(song)
	require.NoError(t, err)
	second, err := Convert(song)
	require.NoError(t, err)

	a, _ := Bytes(first)
	b, _ := Bytes(second)
	assert.Equal(t, a, b)
}

func TestNotesEndInSentinel(t *testing.T) {
	song, err := chart.Parse([]byte(holdIntoHit))
	require.NoError(t, err)
	c, err := Convert(song)
	require.NoError(t, err)

	for i := 1; i < len(c.Notes); i++ {
		assert.LessOrEqual(t, c.Notes[i-1].Pos, c.Notes[i].Pos)
	}
	assert.Equal(t, model.Note{Pos: 0xFFFF, Type: model.NoteFlagHit}, c.Notes[len(c.Notes)-1])
}

func TestHeaderWord(t *testing.T) {
	assert.Equal(t, uint16(14), HeaderWord(3))

	c := model.Chart{
		Sections: []model.Section{{End: 4}, {End: 8}, {End: 0xFFFF}},
		Notes:    []model.Note{{Pos: 0xFFFF, Type: model.NoteFlagHit}},
	}
	dat, err := Bytes(c)
	require.NoError(t, err)
	assert.Equal(t, []byte{14, 0}, dat[:2])
	assert.Len(t, dat, Size(c))
}

func TestConvertErrors(t *testing.T) {
	t.Run("no sections", func(t *testing.T) {
		_, err := Convert(model.RawSong{Bpm: 100})
		var malformed *model.MalformedChartError
		assert.True(t, errors.As(err, &malformed))
	})

	t.Run("zero bpm", func(t *testing.T) {
		song := singleNoteSong(true)
		song.Bpm = 0
		_, err := Convert(song)
		assert.Error(t, err)
	})

	t.Run("bad note names its section", func(t *testing.T) {
		song := singleNoteSong(true)
		song.Sections = append(song.Sections, model.RawSection{Notes: []model.RawNote{{Time: -5}}})
		_, err := Convert(song)
		var malformed *model.MalformedChartError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "song.notes.1.sectionNotes.0.0", malformed.Field)
	})
}

func TestTooManySections(t *testing.T) {
	c := model.Chart{Sections: make([]model.Section, MaxSections+1)}
	_, err := Bytes(c)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	song, err := chart.Parse([]byte(holdIntoHit))
	require.NoError(t, err)
	c, err := Convert(song)
	require.NoError(t, err)

	assert.Equal(t, model.ChartSummary{
		Name:        "holdIntoHit",
		Bpm:         100,
		NumSections: 2,
		NumNotes:    4,
		NumSustains: 2,
		NumOpponent: 1,
		LastPos:     4,
		NumBytes:    30,
	}, Summarize("holdIntoHit", song.Bpm, c))
}
