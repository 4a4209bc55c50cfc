package sim

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/kamstrup/intmap"
	"github.com/plus3/rockfall/well"
)

// Cycle describes a block of drops that was skipped because the well, the
// jet cursor and the shape cursor returned to a state seen before.
type Cycle struct {
	// Start is the drop at which the repeated state was first seen.
	Start int64
	// Length is the number of drops per repetition.
	Length int64
	// Height is how much the stack grows per repetition.
	Height int64
	// Repeats is the number of repetitions skipped.
	Repeats int64
}

type mark struct {
	drop   int64
	height int64
}

// cycleDetector remembers when each state was first seen, one table per
// catalog shape.
type cycleDetector struct {
	seen [well.CatalogSize]*intmap.Map[uint64, mark]
	hash hash.Hash64
	buf  []byte
}

func newCycleDetector() *cycleDetector {
	d := &cycleDetector{hash: fnv.New64a()}
	for i := range d.seen {
		d.seen[i] = intmap.New[uint64, mark](1024)
	}
	return d
}

// fingerprint hashes every row of the store in logical order together with
// the jet cursor.
func (d *cycleDetector) fingerprint(store *well.Store, jetIndex int) uint64 {
	d.buf = store.AppendWindow(d.buf[:0])
	d.buf = binary.LittleEndian.AppendUint64(d.buf, uint64(jetIndex))

	d.hash.Reset()
	d.hash.Write(d.buf)
	return d.hash.Sum64()
}

// skipCycles records the current state, or if it was seen before, jumps
// ahead by as many whole repetitions as fit before target.
func (s *Simulator) skipCycles(target int64) {
	seen := s.cycles.seen[s.shapeIndex]
	key := s.cycles.fingerprint(s.store, s.jets.Cursor())

	first, ok := seen.Get(key)
	if !ok {
		seen.Put(key, mark{drop: s.drops, height: s.height})
		return
	}

	length := s.drops - first.drop
	repeats := (target - s.drops) / length
	if repeats == 0 {
		return
	}

	cycle := Cycle{
		Start:   first.drop,
		Length:  length,
		Height:  s.height - first.height,
		Repeats: repeats,
	}
	s.height += cycle.Height * repeats
	s.drops += cycle.Length * repeats
	s.cycle = &cycle

	s.log.Debug("cycle skipped",
		"start", cycle.Start,
		"length", cycle.Length,
		"height", cycle.Height,
		"repeats", repeats,
		"drops", s.drops,
	)
}
