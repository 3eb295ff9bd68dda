package libdow

import (
	"github.com/dow-systems/godow/godow"
)

// Reduce returns the free reduction of w: adjacent letter pairs that are
// mutual inverses are removed, cascading until none remain. The input
// word is not modified.
func Reduce(w godow.Word) godow.Word {
	return ReduceInPlace(w.Clone())
}

// ReduceInPlace performs free reduction directly on w's backing array and
// returns the (possibly shorter) reduced slice. Callers that own their
// buffer use this to avoid an allocation per image in hot loops.
func ReduceInPlace(w godow.Word) godow.Word {
	i := 0
	for i+1 < len(w) {
		if w[i] == -w[i+1] {
			w = append(w[:i], w[i+2:]...)

			// A removal can expose a new cancelling pair that straddles
			// the cut, so step the cursor back one slot.
			if i > 0 {
				i--
			}
		} else {
			i++
		}
	}
	return w
}

// IsReduced reports whether w contains no adjacent mutually inverse pair.
func IsReduced(w godow.Word) bool {
	for i := 0; i+1 < len(w); i++ {
		if w[i] == -w[i+1] {
			return false
		}
	}
	return true
}

// IsCyclicallyReduced reports whether w is reduced and its last letter is
// not the inverse of its first, so every rotation of w is also reduced.
func IsCyclicallyReduced(w godow.Word) bool {
	if len(w) == 0 {
		return false
	}
	if !IsReduced(w) {
		return false
	}
	return w[0] != -w[len(w)-1]
}

// IsGoodWord reports whether w is reduced and its first and last letters
// are neither equal nor mutual inverses. These are the words the census
// pipeline admits from the raw enumeration.
func IsGoodWord(w godow.Word) bool {
	if len(w) < 2 {
		return false
	}
	if !IsReduced(w) {
		return false
	}
	first, last := w[0], w[len(w)-1]
	return first != last && first != -last
}

// Normalize returns the canonical relabeling of w. Generator magnitudes
// are renamed 1,2,3,... in order of first appearance, then the sign of
// every magnitude whose first occurrence is negative is flipped at all of
// its occurrences, so the first occurrence of each magnitude is positive.
// Two words are equal as abstract double occurrence words exactly when
// their normalized forms are identical.
func Normalize(w godow.Word) godow.Word {
	out := make(godow.Word, len(w))

	var relabel [godow.MaxGenerators + 1]godow.Letter
	next := godow.Letter(0)
	for i, wi := range w {
		mag := wi
		if mag < 0 {
			mag = -mag
		}
		if relabel[mag] == 0 {
			next++
			relabel[mag] = next
		}
		if wi < 0 {
			out[i] = -relabel[mag]
		} else {
			out[i] = relabel[mag]
		}
	}

	var signed [godow.MaxGenerators + 1]bool
	for i, oi := range out {
		mag := oi
		if mag < 0 {
			mag = -mag
		}
		if signed[mag] {
			continue
		}
		signed[mag] = true
		if oi < 0 {
			for j := i; j < len(out); j++ {
				if out[j] == mag || out[j] == -mag {
					out[j] = -out[j]
				}
			}
		}
	}
	return out
}
