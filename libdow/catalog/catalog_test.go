package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
	"github.com/dow-systems/godow/libdow/catalog"
)

func openTestCatalog(t *testing.T) (godow.Catalog, godow.CatalogContext) {
	t.Helper()
	ctx := godow.NewCatalogContext()
	cat, err := catalog.OpenCatalog(ctx, godow.CatalogOpts{AlphabetMax: 4})
	require.NoError(t, err)
	return cat, ctx
}

func word(t *testing.T, expr string) godow.Word {
	t.Helper()
	w, err := libdow.ParseWord(expr)
	require.NoError(t, err)
	return w
}

func TestCatalogTryAddWord(t *testing.T) {
	cat, ctx := openTestCatalog(t)
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	w := word(t, "(1,2,-1,-2)")
	require.True(t, cat.TryAddWord(w))
	require.False(t, cat.TryAddWord(w), "second add of the same word")

	// rotations, inversions, and relabelings share the class entry
	require.False(t, cat.TryAddWord(w.Rotate(1)))
	require.False(t, cat.TryAddWord(w.Invert()))
	require.False(t, cat.TryAddWord(word(t, "(2,1,-2,-1)")))

	require.True(t, cat.HasWord(w.Rotate(3)))
	require.False(t, cat.HasWord(word(t, "(1,1,2,2)")))

	require.EqualValues(t, 1, cat.NumWords(2))
	require.EqualValues(t, 0, cat.NumWords(1))
	require.EqualValues(t, 0, cat.NumWords(3))
}

func TestCatalogMarkOrbit(t *testing.T) {
	cat, ctx := openTestCatalog(t)
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	rep := word(t, "(1,1,2,2)")
	require.True(t, cat.TryAddWord(rep))
	require.True(t, cat.TryAddWord(word(t, "(1,2,-1,2)")))

	require.NoError(t, cat.MarkOrbit(rep))
	require.NoError(t, cat.MarkOrbit(rep.Rotate(2))) // same class, counted once
	require.EqualValues(t, 1, cat.NumOrbits(2))
	require.EqualValues(t, 2, cat.NumWords(2))

	// marking an orbit for a class never added creates its entry
	require.NoError(t, cat.MarkOrbit(word(t, "(1,1,2,2,3,3)")))
	require.EqualValues(t, 1, cat.NumOrbits(3))
	require.EqualValues(t, 1, cat.NumWords(3))
}

func TestCatalogSelectOrbitReps(t *testing.T) {
	cat, ctx := openTestCatalog(t)
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	rep1 := word(t, "(1,1,2,2)")
	rep2 := word(t, "(1,2,-1,-2)")
	require.NoError(t, cat.MarkOrbit(rep1))
	require.NoError(t, cat.MarkOrbit(rep2))
	require.True(t, cat.TryAddWord(word(t, "(1,2,1,2)")), "a non-rep entry")

	hits := make(chan godow.Word, 1)
	go cat.SelectOrbitReps(2, hits)

	got := map[string]struct{}{}
	for w := range hits {
		got[libdow.CyclicNormalize(w).String()] = struct{}{}
	}
	require.Len(t, got, 2)
	_, ok := got[libdow.CyclicNormalize(rep1).String()]
	require.True(t, ok)
	_, ok = got[libdow.CyclicNormalize(rep2).String()]
	require.True(t, ok)

	// no reps recorded for other alphabet sizes
	hits = make(chan godow.Word, 1)
	go cat.SelectOrbitReps(3, hits)
	count := 0
	for range hits {
		count++
	}
	require.Zero(t, count)
}

func TestCatalogAlphabetBounds(t *testing.T) {
	ctx := godow.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	cat, err := catalog.OpenCatalog(ctx, godow.CatalogOpts{AlphabetMax: 2})
	require.NoError(t, err)

	// words over more generators than the catalog admits are rejected
	big := word(t, "(1,1,2,2,3,3)")
	require.False(t, cat.TryAddWord(big))
	require.False(t, cat.HasWord(big))
	require.ErrorIs(t, cat.MarkOrbit(big), godow.ErrLetterRange)
	require.EqualValues(t, 0, cat.NumWords(3))
	require.EqualValues(t, 0, cat.NumOrbits(3))

	// words at the bound still land
	require.True(t, cat.TryAddWord(word(t, "(1,1,2,2)")))
	require.NoError(t, cat.Close())
}

func TestCatalogParamBounds(t *testing.T) {
	ctx := godow.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	_, err := catalog.OpenCatalog(ctx, godow.CatalogOpts{AlphabetMax: godow.MaxGenerators + 1})
	require.ErrorIs(t, err, godow.ErrBadCatalogParam)

	// zero defaults to the compiled-in max
	cat, err := catalog.OpenCatalog(ctx, godow.CatalogOpts{})
	require.NoError(t, err)
	require.EqualValues(t, 0, cat.NumWords(godow.MaxGenerators))
	require.NoError(t, cat.Close())
}
