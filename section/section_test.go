package section

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/chartpak/model"
)

func TestFlags(t *testing.T) {
	cases := []struct {
		name    string
		section model.RawSection
		want    model.SectionFlag
	}{
		{"player", model.RawSection{MustHitSection: true}, 0},
		{"opponent", model.RawSection{MustHitSection: false}, model.SectionFlagOppFocus},
		{"player alt", model.RawSection{MustHitSection: true, AltAnim: true}, model.SectionFlagAltAnim},
		{"opponent alt", model.RawSection{AltAnim: true}, model.SectionFlagAltAnim | model.SectionFlagOppFocus},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Flag(c.section))
		})
	}
}

func TestEncodeAccumulatesEnds(t *testing.T) {
	sections := Encode([]model.RawSection{
		{MustHitSection: true, LengthInSteps: 16},
		{LengthInSteps: 0},
		{MustHitSection: true, LengthInSteps: 12, AltAnim: true},
	})

	assert.Equal(t, []model.Section{
		{End: 16, Flag: 0},
		{End: 16, Flag: model.SectionFlagOppFocus},
		{End: 28, Flag: model.SectionFlagAltAnim},
	}, sections)
}

func TestEncodeEndsNeverDecrease(t *testing.T) {
	var raw []model.RawSection
	for i := 0; i < 64; i++ {
		raw = append(raw, model.RawSection{LengthInSteps: uint16(i % 5 * 4)})
	}

	sections := Encode(raw)
	for i := 1; i < len(sections); i++ {
		assert.GreaterOrEqual(t, sections[i].End, sections[i-1].End)
	}
}

func TestEncodeWrapsAt16Bits(t *testing.T) {
	sections := Encode([]model.RawSection{{LengthInSteps: 0xFFF0}, {LengthInSteps: 0x20}})
	assert.Equal(t, uint16(0x10), sections[1].End)
}

func TestEncodeEmpty(t *testing.T) {
	assert.Empty(t, Encode(nil))
}
