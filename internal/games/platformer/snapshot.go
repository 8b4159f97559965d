package platformer

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// ActorState is the serializable state of one actor.
type ActorState struct {
	Kind  Kind
	X, Y  float64
	VX    float64
	VY    float64
	Phase float64
}

// Snapshot contains the complete dynamic state of a session for replay
// and determinism checks. The grid is static and not included.
type Snapshot struct {
	Tick        int
	Status      Status
	FinishDelay float64
	Actors      []ActorState
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	actors := s.level.Actors()
	snap := Snapshot{
		Tick:        s.tick,
		Status:      s.level.Status(),
		FinishDelay: s.level.FinishDelay(),
		Actors:      make([]ActorState, len(actors)),
	}
	for i, a := range actors {
		snap.Actors[i] = ActorState{
			Kind:  a.kind,
			X:     a.pos.X,
			Y:     a.pos.Y,
			VX:    a.speed.X,
			VY:    a.speed.Y,
			Phase: a.phase,
		}
	}
	return snap
}

// Hash computes an FNV-1a hash over the snapshot.
// Identical simulations produce identical hashes.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeF := func(f float64) {
		writeU(math.Float64bits(f))
	}

	writeU(uint64(snap.Tick))   //#nosec G115 -- hash computation
	writeU(uint64(snap.Status)) //#nosec G115 -- hash computation
	writeF(snap.FinishDelay)

	for _, a := range snap.Actors {
		_, _ = h.Write([]byte(a.Kind))
		writeF(a.X)
		writeF(a.Y)
		writeF(a.VX)
		writeF(a.VY)
		writeF(a.Phase)
	}

	return h.Sum64()
}
