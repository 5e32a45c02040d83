package chart

import (
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"

	"github.com/jsphweid/chartpak/model"
)

// Load reads and parses the chart JSON at path.
func Load(path string) (model.RawSong, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return model.RawSong{}, &model.InputOpenError{Path: path, Err: err}
	}
	return Parse(dat)
}

// Parse reads a chart document of the form {"song": {"bpm", "speed", "notes": [...]}}.
// Nothing beyond field presence and JSON types is checked here.
func Parse(dat []byte) (model.RawSong, error) {
	var song model.RawSong

	if !gjson.ValidBytes(dat) {
		return song, model.Malformed("json", "document is not valid JSON")
	}

	info := gjson.GetBytes(dat, "song")
	if !info.IsObject() {
		return song, model.Malformed("song", "missing or not an object")
	}

	var err error
	song.Name = info.Get("song").String()
	if song.Bpm, err = getNumber(info, "bpm", "song"); err != nil {
		return song, err
	}
	if song.Speed, err = getNumber(info, "speed", "song"); err != nil {
		return song, err
	}

	notes := info.Get("notes")
	if !notes.IsArray() {
		return song, model.Malformed("song.notes", "missing or not an array")
	}
	for i, raw := range notes.Array() {
		section, err := parseSection(raw, fmt.Sprintf("song.notes.%d", i))
		if err != nil {
			return song, err
		}
		song.Sections = append(song.Sections, section)
	}

	return song, nil
}

func parseSection(raw gjson.Result, path string) (model.RawSection, error) {
	var section model.RawSection
	if !raw.IsObject() {
		return section, model.Malformed(path, "section is not an object")
	}

	var err error
	if section.MustHitSection, err = getBool(raw, "mustHitSection", path); err != nil {
		return section, err
	}
	if section.AltAnim, err = getBool(raw, "alt_anim", path); err != nil {
		return section, err
	}

	length, err := getNumber(raw, "lengthInSteps", path)
	if err != nil {
		return section, err
	}
	if length != math.Trunc(length) || length < 0 || length > math.MaxUint16 {
		return section, model.Malformed(path+".lengthInSteps", "%v is not an integer in [0, %d]", length, math.MaxUint16)
	}
	section.LengthInSteps = uint16(length)

	// sectionNotes may be absent on empty sections
	notes := raw.Get("sectionNotes")
	if notes.Exists() && notes.Type != gjson.Null && !notes.IsArray() {
		return section, model.Malformed(path+".sectionNotes", "not an array")
	}
	for i, n := range notes.Array() {
		note, err := parseNote(n, fmt.Sprintf("%s.sectionNotes.%d", path, i))
		if err != nil {
			return section, err
		}
		section.Notes = append(section.Notes, note)
	}

	return section, nil
}

func parseNote(raw gjson.Result, path string) (model.RawNote, error) {
	var note model.RawNote
	if !raw.IsArray() {
		return note, model.Malformed(path, "note is not an array")
	}

	// extra trailing elements (e.g. alt-animation markers) are ignored
	elems := raw.Array()
	if len(elems) < 3 {
		return note, model.Malformed(path, "note has %d elements, need [time, type, sustain]", len(elems))
	}
	for i, e := range elems[:3] {
		if e.Type != gjson.Number {
			return note, model.Malformed(fmt.Sprintf("%s.%d", path, i), "expected number, got %s", e.Type)
		}
	}

	kind := elems[1].Float()
	if kind != math.Trunc(kind) || kind < 0 || kind > math.MaxUint8 {
		return note, model.Malformed(path+".1", "note type %v is not an integer in [0, %d]", kind, math.MaxUint8)
	}

	note.Time = elems[0].Float()
	note.Type = uint8(kind)
	note.Sustain = elems[2].Float()
	return note, nil
}

func getNumber(obj gjson.Result, key string, path string) (float64, error) {
	r := obj.Get(key)
	if !r.Exists() {
		return 0, model.Malformed(path+"."+key, "missing")
	}
	if r.Type != gjson.Number {
		return 0, model.Malformed(path+"."+key, "expected number, got %s", r.Type)
	}
	return r.Float(), nil
}

// getBool treats a missing or null field as false.
func getBool(obj gjson.Result, key string, path string) (bool, error) {
	r := obj.Get(key)
	switch r.Type {
	case gjson.Null:
		return false, nil
	case gjson.True, gjson.False:
		return r.Bool(), nil
	}
	return false, model.Malformed(path+"."+key, "expected boolean, got %s", r.Type)
}
