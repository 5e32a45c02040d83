package model

type SectionFlag uint8

const (
	SectionFlagAltAnim  SectionFlag = 1 << 0 // alternate singing animation
	SectionFlagOppFocus SectionFlag = 1 << 1 // camera focuses the opponent
)

func (f SectionFlag) Has(flag SectionFlag) bool {
	return f&flag != 0
}

type NoteFlag uint8

const (
	NoteFlagOpponent   NoteFlag = 1 << 2
	NoteFlagSustain    NoteFlag = 1 << 3
	NoteFlagSustainEnd NoteFlag = 1 << 4
	NoteFlagHit        NoteFlag = 1 << 7

	// low bits hold the lane
	NoteLaneMask NoteFlag = 0x3
)

func (f NoteFlag) Has(flag NoteFlag) bool {
	return f&flag != 0
}

func (f NoteFlag) Lane() uint8 {
	return uint8(f & NoteLaneMask)
}

type Section struct {
	End  uint16
	Flag SectionFlag
}

type Note struct {
	Pos  uint16 // quarter steps
	Type NoteFlag
}

func (n Note) IsSustain() bool {
	return n.Type.Has(NoteFlagSustain)
}

// Chart is a fully sequenced and terminated pair of tables, ready to be written.
type Chart struct {
	Sections []Section
	Notes    []Note
}

type ChartSummary struct {
	Name        string
	Bpm         float64
	NumSections int
	NumNotes    int
	NumSustains int
	NumOpponent int
	LastPos     uint16
	NumBytes    int
}
