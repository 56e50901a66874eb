package noise

import "slices"

// Snapshot is an immutable copy of a Noise configuration taken when an
// evaluation call starts. Backends and accelerators read it; changes to the
// Noise after the call started are not visible.
type Snapshot struct {
	Seed      int32
	Frequency float32
	Interp    Interp
	NoiseType NoiseType

	FractalOctaves    int
	FractalLacunarity float32
	FractalGain       float32
	FractalType       FractalType
	FractalBounding   float32

	CellularDistanceFunction CellularDistanceFunction
	CellularReturnType       CellularReturnType

	// PerturbAmp is the stored amplitude, already divided by 0.45.
	PerturbAmp  float32
	PerturbType PerturbType

	lookup      *Snapshot
	lookupCycle bool
}

// Lookup returns the snapshot of the cellular lookup noise, if one was set.
func (s Snapshot) Lookup() (Snapshot, bool) {
	if s.lookup == nil {
		return Snapshot{}, false
	}
	return *s.lookup, true
}

// usesLookup reports whether the generic evaluation of s reads its lookup.
func (s *Snapshot) usesLookup() bool {
	return s.NoiseType == NoiseCellular && s.CellularReturnType == ReturnNoiseLookup
}

// Snapshot returns an immutable copy of the current configuration, including
// the lookup chain. When the chain revisits a Noise, that Noise is copied
// without its own lookup and marked; evaluating through the cut link
// reports ErrLookupCycle.
func (n *Noise) Snapshot() Snapshot {
	return n.snapshot(nil)
}

func (n *Noise) snapshot(path []*Noise) Snapshot {
	n.mu.RLock()
	s := n.cfg
	lookup := n.lookup
	n.mu.RUnlock()

	s.lookup = nil
	s.lookupCycle = false
	if lookup == nil {
		return s
	}
	if slices.Contains(path, n) {
		s.lookupCycle = true
		return s
	}
	ls := lookup.snapshot(append(path, n))
	s.lookup = &ls
	return s
}
