package libdow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
)

func classContains(class []godow.Word, w godow.Word) bool {
	for _, member := range class {
		if member.Equal(w) {
			return true
		}
	}
	return false
}

func TestCyclicClass(t *testing.T) {
	w := mustWord(t, "(1,1,2,2)")
	class := libdow.CyclicClass(w)

	require.NotEmpty(t, class)
	require.LessOrEqual(t, len(class), 2*len(w))

	// every member is normalized and the class is duplicate free
	seen := map[string]struct{}{}
	for _, member := range class {
		require.True(t, member.Equal(libdow.Normalize(member)), "class member %v not normalized", member)
		key := member.String()
		_, dup := seen[key]
		require.False(t, dup, "duplicate class member %v", member)
		seen[key] = struct{}{}
	}

	// all rotations and their inverses land inside the class
	for k := 0; k < len(w); k++ {
		rot := w.Rotate(k)
		require.True(t, classContains(class, libdow.Normalize(rot)))
		require.True(t, classContains(class, libdow.Normalize(rot.Invert())))
	}

	// the seed's own normalized form is the first discovered member
	require.True(t, class[0].Equal(libdow.Normalize(w)))
}

func TestCyclicClassEmptyWord(t *testing.T) {
	require.Empty(t, libdow.CyclicClass(godow.Word{}))
	require.Nil(t, libdow.CyclicNormalize(godow.Word{}))
}

func TestCyclicNormalize(t *testing.T) {
	// all of these are readings of the same cyclic word
	base := libdow.CyclicNormalize(mustWord(t, "(1,2,-1,2)"))
	for _, expr := range []string{
		"(2,-1,2,1)",
		"(-2,1,-2,-1)",
		"(2,1,2,-1)",
	} {
		got := libdow.CyclicNormalize(mustWord(t, expr))
		require.True(t, got.Equal(base), "CyclicNormalize(%v) = %v, want %v", expr, got, base)
	}

	// distinct cyclic words get distinct canonical forms
	other := libdow.CyclicNormalize(mustWord(t, "(1,1,2,2)"))
	require.False(t, other.Equal(base))
}

func TestCyclicNormalizeIsLeastMember(t *testing.T) {
	w := mustWord(t, "(1,2,-1,-2)")
	canonic := libdow.CyclicNormalize(w)
	for _, member := range libdow.CyclicClass(w) {
		require.LessOrEqual(t, canonic.Compare(member), 0)
	}
}
