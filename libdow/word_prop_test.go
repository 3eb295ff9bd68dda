package libdow_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
)

// genWord yields arbitrary letter sequences over a 3 generator alphabet,
// zero slots mapped onto 1 so every letter is valid.
func genWord() gopter.Gen {
	return gen.SliceOf(gen.Int8Range(-3, 3)).Map(func(raw []int8) godow.Word {
		w := make(godow.Word, len(raw))
		for i, v := range raw {
			if v == 0 {
				v = 1
			}
			w[i] = godow.Letter(v)
		}
		return w
	})
}

// TestWordInvariants verifies the algebraic laws the census pipeline
// leans on for arbitrary words.
func TestWordInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("free reduction is idempotent", prop.ForAll(
		func(w godow.Word) bool {
			once := libdow.Reduce(w)
			return libdow.IsReduced(once) && once.Equal(libdow.Reduce(once))
		},
		genWord(),
	))

	properties.Property("normalization is idempotent", prop.ForAll(
		func(w godow.Word) bool {
			once := libdow.Normalize(w)
			return once.Equal(libdow.Normalize(once))
		},
		genWord(),
	))

	properties.Property("inverting twice restores the word", prop.ForAll(
		func(w godow.Word) bool {
			return w.Equal(w.Invert().Invert())
		},
		genWord(),
	))

	properties.Property("a word and its inverse reduce to equal lengths", prop.ForAll(
		func(w godow.Word) bool {
			return len(libdow.Reduce(w)) == len(libdow.Reduce(w.Invert()))
		},
		genWord(),
	))

	properties.Property("cyclic normal form is a rotation/inversion invariant", prop.ForAll(
		func(w godow.Word, k int) bool {
			if len(w) == 0 {
				return true
			}
			canonic := libdow.CyclicNormalize(w)
			rot := w.Rotate(k)
			return canonic.Equal(libdow.CyclicNormalize(rot)) &&
				canonic.Equal(libdow.CyclicNormalize(rot.Invert()))
		},
		genWord(),
		gen.IntRange(-8, 8),
	))

	properties.TestingRun(t)
}
