package libdow

import (
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/plan-systems/klog"

	"github.com/dow-systems/godow/godow"
)

// OrbitOpts tunes an orbit closure run.
type OrbitOpts struct {

	// MaxClasses caps how many cyclic classes the closure may discover.
	// Exceeding it aborts the run with ErrOrbitBudget.  0 means no cap.
	MaxClasses int

	// LogEvery emits a progress line at this interval while the closure
	// is still expanding.  0 disables progress output.
	LogEvery time.Duration
}

// Orbit is the closure of a word's cyclic class under the letter
// substitution maps of its alphabet.
type Orbit struct {

	// Min is the least member of the orbit under Word.Compare.
	Min godow.Word

	// Members holds every normalized word in the orbit, in discovery
	// order: the seed's cyclic class first, then each accepted image's
	// class in the order the worklist produced them.
	Members []godow.Word

	// Classes counts the cyclic classes merged into this orbit.
	Classes int
}

// Contains reports whether the normalized form of w is in the orbit.
func (orbit *Orbit) Contains(w godow.Word) bool {
	norm := Normalize(w)
	for _, member := range orbit.Members {
		if member.Equal(norm) {
			return true
		}
	}
	return false
}

// orbitComputer carries the worklist state for one closure run.
type orbitComputer struct {
	n       int
	opts    OrbitOpts
	seen    map[string]struct{}
	ordered *redblacktree.Tree
	members []godow.Word
	queue   []godow.Word
	scrap   godow.Word
	keyBuf  []byte
}

// AutomorphismOrbit computes the closure of w's cyclic class under every
// letter substitution map over an alphabet of n generators.  Each class
// representative on the worklist is fed through every map; an image is
// accepted only when its free reduction has the same length as the source
// and its normalized form has not been seen before.  Accepting an image
// admits its entire cyclic class and queues that class's least member.
//
// The word must be cyclically reduced, else rotations of it would not
// stay reduced and the closure would not be well defined.
func AutomorphismOrbit(w godow.Word, n int, opts OrbitOpts) (*Orbit, error) {
	if err := w.Validate(n); err != nil {
		return nil, err
	}
	if !IsCyclicallyReduced(w) {
		return nil, godow.ErrNotReduced
	}

	oc := &orbitComputer{
		n:    n,
		opts: opts,
		seen: make(map[string]struct{}, 64),
		ordered: redblacktree.NewWith(func(a, b interface{}) int {
			return a.(godow.Word).Compare(b.(godow.Word))
		}),
		scrap:  make(godow.Word, 0, 3*len(w)),
		keyBuf: make([]byte, 0, godow.MaxWordLen+8),
	}

	if err := oc.run(w); err != nil {
		return nil, err
	}

	orbit := &Orbit{
		Members: oc.members,
		Classes: len(oc.queue),
	}
	if node := oc.ordered.Left(); node != nil {
		orbit.Min = node.Key.(godow.Word)
	}
	return orbit, nil
}

func (oc *orbitComputer) run(w godow.Word) error {
	if err := oc.admitClass(CyclicClass(w)); err != nil {
		return err
	}

	startTime := time.Now()
	nextLog := startTime.Add(oc.opts.LogEvery)

	for qi := 0; qi < len(oc.queue); qi++ {
		rep := oc.queue[qi]

		for L := uint32(0); L < 1<<oc.n; L++ {
			for R := uint32(0); R < 1<<oc.n; R++ {
				for x0 := 1; x0 <= oc.n; x0++ {
					if (L|R)&(1<<(x0-1)) != 0 {
						continue
					}
					if err := oc.applyMap(rep, L, R, godow.Letter(x0)); err != nil {
						return err
					}
					if err := oc.applyMap(rep, L, R, godow.Letter(-x0)); err != nil {
						return err
					}
				}
			}
		}

		if oc.opts.LogEvery > 0 {
			if now := time.Now(); now.After(nextLog) {
				nextLog = now.Add(oc.opts.LogEvery)
				klog.Infof("orbit of %v: %d classes (%d pending), %d words, %v elapsed",
					w, len(oc.queue), len(oc.queue)-qi-1, len(oc.members), now.Sub(startTime).Round(time.Millisecond))
			}
		}
	}
	return nil
}

// applyMap images rep under the substitution map named by (L, R, x),
// freely reduces the image, and admits its cyclic class when the image is
// length preserving and new.
func (oc *orbitComputer) applyMap(rep godow.Word, L, R uint32, x godow.Letter) error {
	img := oc.scrap[:0]
	for _, a := range rep {
		img = appendMapped(img, a, L, R, x)
	}
	img = ReduceInPlace(img)
	oc.scrap = img[:0]

	if len(img) != len(rep) {
		return nil
	}
	norm := Normalize(img)
	oc.keyBuf = norm.AppendWordLSM(oc.keyBuf[:0])
	if _, dup := oc.seen[string(oc.keyBuf)]; dup {
		return nil
	}
	return oc.admitClass(CyclicClass(norm))
}

// admitClass merges a cyclic class into the orbit and queues its least
// member as a new worklist representative.
func (oc *orbitComputer) admitClass(class []godow.Word) error {
	if oc.opts.MaxClasses > 0 && len(oc.queue) >= oc.opts.MaxClasses {
		return godow.ErrOrbitBudget
	}
	for _, member := range class {
		oc.keyBuf = member.AppendWordLSM(oc.keyBuf[:0])
		key := string(oc.keyBuf)
		if _, dup := oc.seen[key]; dup {
			continue
		}
		oc.seen[key] = struct{}{}
		oc.members = append(oc.members, member)
		oc.ordered.Put(member, struct{}{})
	}
	oc.queue = append(oc.queue, minOfClass(class))
	return nil
}

// appendMapped appends the image of the single letter a under the map
// (L, R, x) to dst.  The map sends the chosen letter x to itself,
// conjugates magnitudes in both L and R, right-multiplies letters whose
// positive form is in R or whose negative form is in L, and
// left-multiplies the mirror cases.
func appendMapped(dst godow.Word, a godow.Letter, L, R uint32, x godow.Letter) godow.Word {
	if a == x || a == -x {
		return append(dst, a)
	}

	mag := a
	if mag < 0 {
		mag = -mag
	}
	bit := uint32(1) << (mag - 1)

	inL := L&bit != 0
	inR := R&bit != 0

	switch {
	case inL && inR:
		return append(dst, -x, a, x)
	case (a > 0 && inR) || (a < 0 && inL):
		return append(dst, a, x)
	case (a < 0 && inR) || (a > 0 && inL):
		return append(dst, -x, a)
	}
	return append(dst, a)
}
