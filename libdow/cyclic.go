package libdow

import (
	"github.com/dow-systems/godow/godow"
)

// CyclicClass returns every normalized form reachable from w by rotation
// and by inversion of a rotation, deduplicated, in discovery order:
// rotation amounts ascend from 0, and each rotation is visited before its
// inverse.
func CyclicClass(w godow.Word) []godow.Word {
	if len(w) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, 2*len(w))
	class := make([]godow.Word, 0, 2*len(w))
	var keyBuf [godow.MaxWordLen + 8]byte

	add := func(v godow.Word) {
		norm := Normalize(v)
		key := string(norm.AppendWordLSM(keyBuf[:0]))
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		class = append(class, norm)
	}

	for k := 0; k < len(w); k++ {
		rot := w.Rotate(k)
		add(rot)
		add(rot.Invert())
	}
	return class
}

// CyclicNormalize returns the least member of w's cyclic class under
// Word.Compare. This is the canonical representative used to test whether
// two words name the same cyclic double occurrence word.
func CyclicNormalize(w godow.Word) godow.Word {
	class := CyclicClass(w)
	if len(class) == 0 {
		return nil
	}
	min := class[0]
	for _, v := range class[1:] {
		if v.Compare(min) < 0 {
			min = v
		}
	}
	return min
}

// minOfClass picks the least element from an already-built cyclic class.
func minOfClass(class []godow.Word) godow.Word {
	min := class[0]
	for _, v := range class[1:] {
		if v.Compare(min) < 0 {
			min = v
		}
	}
	return min
}
