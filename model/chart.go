package model

// RawNote is one entry of a section's sectionNotes array.
type RawNote struct {
	Time    float64
	Type    uint8
	Sustain float64
}

type RawSection struct {
	MustHitSection bool
	LengthInSteps  uint16
	AltAnim        bool
	Notes          []RawNote
}

type RawSong struct {
	Name     string
	Bpm      float64
	Speed    float64
	Sections []RawSection
}
