package pack

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/jsphweid/chartpak/constants"
	"github.com/jsphweid/chartpak/model"
)

// MaxSections is the most sections whose table length still fits the u16 header.
const MaxSections = (0xFFFF - constants.HeaderSize) / constants.SectionSize

func HeaderWord(numSections int) uint16 {
	return uint16(constants.HeaderSize + numSections*constants.SectionSize)
}

func Size(c model.Chart) int {
	return constants.HeaderSize + len(c.Sections)*constants.SectionSize + len(c.Notes)*constants.NoteSize
}

// Encode writes the chart little-endian: the section table length, every section as
// (end, flag, 0), then every note as (pos, type, 0). The note count is not stored.
func Encode(w io.Writer, c model.Chart) error {
	if len(c.Sections) > MaxSections {
		return errors.Errorf("%d sections do not fit the section table (max %d)", len(c.Sections), MaxSections)
	}

	buf := new(bytes.Buffer)
	buf.Grow(Size(c))
	binary.Write(buf, binary.LittleEndian, HeaderWord(len(c.Sections)))
	for _, s := range c.Sections {
		binary.Write(buf, binary.LittleEndian, s.End)
		buf.WriteByte(byte(s.Flag))
		buf.WriteByte(0)
	}
	for _, n := range c.Notes {
		binary.Write(buf, binary.LittleEndian, n.Pos)
		buf.WriteByte(byte(n.Type))
		buf.WriteByte(0)
	}

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "could not write chart")
}

func Bytes(c model.Chart) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a packed chart back. The note table ends at the first sentinel position,
// which is kept as the last note.
func Decode(dat []byte) (model.Chart, error) {
	var c model.Chart

	if len(dat) < constants.HeaderSize {
		return c, errors.New("chart is too short for a header")
	}
	tableLen := int(binary.LittleEndian.Uint16(dat))
	if tableLen < constants.HeaderSize || (tableLen-constants.HeaderSize)%constants.SectionSize != 0 {
		return c, errors.Errorf("section table length %d is not 2 + 4n", tableLen)
	}
	if tableLen > len(dat) {
		return c, errors.Errorf("section table length %d runs past the end of %d bytes", tableLen, len(dat))
	}

	for i := constants.HeaderSize; i < tableLen; i += constants.SectionSize {
		c.Sections = append(c.Sections, model.Section{
			End:  binary.LittleEndian.Uint16(dat[i : i+2]),
			Flag: model.SectionFlag(dat[i+2]),
		})
	}

	i := tableLen
	for ; i+constants.NoteSize <= len(dat); i += constants.NoteSize {
		n := model.Note{
			Pos:  binary.LittleEndian.Uint16(dat[i : i+2]),
			Type: model.NoteFlag(dat[i+2]),
		}
		c.Notes = append(c.Notes, n)
		if n.Pos == constants.Sentinel {
			i += constants.NoteSize
			break
		}
	}
	if len(c.Notes) == 0 || c.Notes[len(c.Notes)-1].Pos != constants.Sentinel {
		return c, errors.New("note table has no sentinel")
	}
	if i != len(dat) {
		return c, errors.Errorf("%d trailing bytes after the note sentinel", len(dat)-i)
	}

	return c, nil
}
