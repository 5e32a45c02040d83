package midi

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chartpak/model"
)

const TicksPerBeat = 960

// a grid unit is a quarter of a step, so 16 per beat
const TicksPerPos = TicksPerBeat / 16

// lanes 0-3 (left, down, up, right) land on consecutive keys from middle C
const BaseKey = 60

const (
	PlayerChannel   = 0
	OpponentChannel = 1
)

const velocity = 100

type event struct {
	tick uint32
	on   bool
	key  uint8
}

type hold struct {
	start uint32
	end   uint32
}

// Export renders a packed chart as a two track SMF: the player's notes, then the
// opponent's. A hit sounds for one step, a hold until one step past its last tick.
func Export(c model.Chart, bpm float64, name string) (*smf.SMF, error) {
	if bpm <= 0 {
		return nil, errors.Errorf("cannot export at %v bpm", bpm)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerBeat)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTrackSequenceName(name))
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return nil, errors.Wrap(err, "could not add tempo track")
	}

	for _, opponent := range []bool{false, true} {
		track := makeTrack(collectEvents(c.Notes, opponent), channel(opponent))
		if err := s.Add(track); err != nil {
			return nil, errors.Wrap(err, "could not add note track")
		}
	}

	return s, nil
}

func channel(opponent bool) uint8 {
	if opponent {
		return OpponentChannel
	}
	return PlayerChannel
}

func collectEvents(notes []model.Note, opponent bool) []event {
	var events []event
	open := make(map[uint8]*hold)

	closeHold := func(key uint8, at uint32) {
		h := open[key]
		end := h.end
		if at < end {
			end = at
		}
		events = append(events, event{tick: h.start, on: true, key: key}, event{tick: end, on: false, key: key})
		delete(open, key)
	}

	for _, n := range notes {
		if n.Type.Has(model.NoteFlagHit) || n.Type.Has(model.NoteFlagOpponent) != opponent {
			continue
		}
		key := BaseKey + n.Type.Lane()
		tick := uint32(n.Pos) * TicksPerPos
		step := uint32(4 * TicksPerPos)

		if n.IsSustain() {
			if h, ok := open[key]; ok && tick+step > h.end {
				h.end = tick + step
			}
			continue
		}
		if _, ok := open[key]; ok {
			closeHold(key, tick)
		}
		open[key] = &hold{start: tick, end: tick + step}
	}

	keys := make([]uint8, 0, len(open))
	for k := range open {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		closeHold(k, open[k].end)
	}

	// releases before presses so a repeated key retriggers
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})
	return events
}

func makeTrack(events []event, ch uint8) smf.Track {
	var track smf.Track
	var last uint32
	for _, e := range events {
		if e.on {
			track.Add(e.tick-last, gomidi.NoteOn(ch, e.key, velocity))
		} else {
			track.Add(e.tick-last, gomidi.NoteOff(ch, e.key))
		}
		last = e.tick
	}
	track.Close(0)
	return track
}

// Bytes renders the export as a standard MIDI file.
func Bytes(c model.Chart, bpm float64, name string) ([]byte, error) {
	s, err := Export(c, bpm, name)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if _, err := s.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "could not write midi")
	}
	return buf.Bytes(), nil
}
