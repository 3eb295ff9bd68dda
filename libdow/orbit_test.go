package libdow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
)

func TestAutomorphismOrbitKleinBottle(t *testing.T) {
	seed := mustWord(t, "(1,1,2,2)")
	orbit, err := libdow.AutomorphismOrbit(seed, 2, libdow.OrbitOpts{})
	require.NoError(t, err)

	// length is preserved across the whole orbit
	for _, member := range orbit.Members {
		require.Len(t, member, len(seed))
	}

	// the seed's entire cyclic class is in
	for _, member := range libdow.CyclicClass(seed) {
		require.True(t, orbit.Contains(member))
	}

	// xyx'y and xyxy' both spell the Klein bottle, so the substitution
	// closure of xxyy reaches them
	require.True(t, orbit.Contains(mustWord(t, "(1,2,-1,2)")))
	require.True(t, orbit.Contains(mustWord(t, "(1,2,1,-2)")))

	require.GreaterOrEqual(t, orbit.Classes, 2)
	require.True(t, orbit.Min.Equal(seed), "least orbit member = %v", orbit.Min)
}

func TestAutomorphismOrbitTorus(t *testing.T) {
	seed := mustWord(t, "(1,2,-1,-2)")
	orbit, err := libdow.AutomorphismOrbit(seed, 2, libdow.OrbitOpts{})
	require.NoError(t, err)

	// the commutator word is orientable, the Klein bottle words are not
	require.False(t, orbit.Contains(mustWord(t, "(1,1,2,2)")))
	require.False(t, orbit.Contains(mustWord(t, "(1,2,-1,2)")))

	for _, member := range orbit.Members {
		require.Len(t, member, len(seed))
	}
}

func TestAutomorphismOrbitsAreDisjointOrEqual(t *testing.T) {
	orbit1, err := libdow.AutomorphismOrbit(mustWord(t, "(1,1,2,2)"), 2, libdow.OrbitOpts{})
	require.NoError(t, err)
	orbit2, err := libdow.AutomorphismOrbit(mustWord(t, "(1,2,-1,-2)"), 2, libdow.OrbitOpts{})
	require.NoError(t, err)

	for _, member := range orbit2.Members {
		require.False(t, orbit1.Contains(member), "orbits share member %v", member)
	}
}

func TestAutomorphismOrbitDeterministic(t *testing.T) {
	run1, err := libdow.AutomorphismOrbit(mustWord(t, "(1,1,2,2)"), 2, libdow.OrbitOpts{})
	require.NoError(t, err)
	run2, err := libdow.AutomorphismOrbit(mustWord(t, "(1,1,2,2)"), 2, libdow.OrbitOpts{})
	require.NoError(t, err)

	require.Equal(t, len(run1.Members), len(run2.Members))
	for i := range run1.Members {
		require.True(t, run1.Members[i].Equal(run2.Members[i]), "member %d differs between runs", i)
	}
}

func TestAutomorphismOrbitRejectsUnreducedSeeds(t *testing.T) {
	_, err := libdow.AutomorphismOrbit(mustWord(t, "(1,-1,2,2)"), 2, libdow.OrbitOpts{})
	require.ErrorIs(t, err, godow.ErrNotReduced)

	_, err = libdow.AutomorphismOrbit(mustWord(t, "(2,2,1,1)"), 1, libdow.OrbitOpts{})
	require.ErrorIs(t, err, godow.ErrLetterRange)
}

func TestAutomorphismOrbitBudget(t *testing.T) {
	_, err := libdow.AutomorphismOrbit(mustWord(t, "(1,1,2,2)"), 2, libdow.OrbitOpts{
		MaxClasses: 1,
	})
	require.ErrorIs(t, err, godow.ErrOrbitBudget)
}
