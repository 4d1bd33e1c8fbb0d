package starmap

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/kohaut/promis/internal/geo"
	"github.com/kohaut/promis/internal/logic"
)

// snapshot is the gob-serializable form of a StarMap: enough to reconstruct
// every slot's support points and refit its approximator on Load, without
// serializing approximator internals directly.
type snapshot struct {
	Origin geo.PolarLocation
	Method string
	Slots  []snapshotSlot
}

type snapshotSlot struct {
	Ref          logic.RelationRef
	East, North  []float64
	Mean, Var    []float64
	Fitted       bool
}

// Save writes a gzip-compressed gob encoding of the StaR Map's support
// points and method to w. Fitted approximator state is not serialized;
// Load refits every slot that was fitted at save time, making the loaded
// map behaviourally indistinguishable from the original.
func (m *StarMap) Save(w io.Writer) error {
	snap := snapshot{Origin: m.Target.OriginLocation(), Method: m.Method}
	for _, ref := range sortedRefs(m.slots) {
		s := m.slots[ref]
		n := s.Support.Len()
		ss := snapshotSlot{
			Ref:    ref,
			East:   make([]float64, n),
			North:  make([]float64, n),
			Mean:   make([]float64, n),
			Var:    make([]float64, n),
			Fitted: s.Fitted,
		}
		for i := 0; i < n; i++ {
			ss.East[i] = s.Support.East(i)
			ss.North[i] = s.Support.North(i)
			ss.Mean[i] = s.Support.V(0, i)
			ss.Var[i] = s.Support.V(1, i)
		}
		snap.Slots = append(snap.Slots, ss)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("starmap: encode snapshot: %w", err)
	}

	gz := gzip.NewWriter(w)
	if _, err := gz.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("starmap: compress snapshot: %w", err)
	}
	return gz.Close()
}

// Load replaces the StaR Map's slots with the ones serialized in r and
// refits every slot that was fitted when saved.
func (m *StarMap) Load(r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("starmap: open snapshot: %w", err)
	}
	defer gz.Close()

	var snap snapshot
	if err := gob.NewDecoder(gz).Decode(&snap); err != nil {
		return fmt.Errorf("starmap: decode snapshot: %w", err)
	}
	if snap.Origin != m.Target.OriginLocation() {
		return ErrOriginMismatch
	}

	m.Method = snap.Method
	m.slots = make(map[logic.RelationRef]*slot, len(snap.Slots))
	var toRefit []logic.RelationRef
	for _, ss := range snap.Slots {
		s := newSlot(m.Target.OriginLocation())
		for i := range ss.East {
			if err := s.Support.Append(ss.East[i], ss.North[i], ss.Mean[i], ss.Var[i]); err != nil {
				return err
			}
		}
		m.slots[ss.Ref] = s
		if ss.Fitted {
			toRefit = append(toRefit, ss.Ref)
		}
	}
	return m.Fit(toRefit)
}
