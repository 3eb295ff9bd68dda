package libdow

import (
	"github.com/plan-systems/klog"

	"github.com/dow-systems/godow/godow"
)

// CensusOpts specifies params for a census run.
type CensusOpts struct {

	// Catalog, when set, receives every orbit member discovered and one
	// flagged representative per orbit, and is consulted so orbits
	// witnessed by an earlier run are not reported again.
	Catalog godow.Catalog

	// Orbit tunes the per-orbit closure runs.
	Orbit OrbitOpts
}

// CensusStream streams one witness word per orbit of cycle words, for each
// alphabet size from nMin through nMax.
//
// For each alphabet size, the good word enumeration is scanned in order.
// A word already claimed by an earlier orbit is skipped.  Otherwise its
// derived graph is tested, and when that graph is a simple cycle the
// word's orbit is closed, all its members are claimed, and the word is
// emitted as the orbit's witness.  The witness is therefore always the
// enumeration-first cycle word of its orbit, making the output order
// reproducible run to run.
func CensusStream(nMin, nMax int, opts CensusOpts) *godow.WordStream {
	stream := godow.NewWordStream()

	go func() {
		defer stream.Close()

		for n := nMin; n <= nMax; n++ {
			if err := censusAlphabet(n, opts, stream); err != nil {
				klog.Errorf("census n=%d: %v", n, err)
				return
			}
		}
	}()

	return stream
}

func censusAlphabet(n int, opts CensusOpts, out *godow.WordStream) error {
	claimed := make(map[string]struct{}, 256)
	var keyBuf [godow.MaxWordLen + 8]byte

	claim := func(w godow.Word) bool {
		key := string(CyclicNormalize(w).AppendWordLSM(keyBuf[:0]))
		if _, dup := claimed[key]; dup {
			return false
		}
		claimed[key] = struct{}{}
		return true
	}

	// On error, keep draining the enumeration so its producer isn't left
	// blocked mid-send.
	var scanErr error

	good := EnumGoodWords(n)
	for w := range good.Outlet {
		if scanErr != nil {
			continue
		}
		key := string(CyclicNormalize(w).AppendWordLSM(keyBuf[:0]))
		if _, dup := claimed[key]; dup {
			continue
		}
		if opts.Catalog != nil && opts.Catalog.HasWord(w) {
			continue
		}

		isCycle, err := IsCycleWord(w, n)
		if err != nil {
			scanErr = err
			continue
		}
		if !isCycle {
			continue
		}

		orbit, err := AutomorphismOrbit(w, n, opts.Orbit)
		if err != nil {
			scanErr = err
			continue
		}
		for _, member := range orbit.Members {
			claim(member)
			if opts.Catalog != nil {
				opts.Catalog.TryAddWord(member)
			}
		}
		if opts.Catalog != nil {
			if err := opts.Catalog.MarkOrbit(w); err != nil {
				scanErr = err
				continue
			}
		}

		out.Outlet <- w
	}
	return scanErr
}
