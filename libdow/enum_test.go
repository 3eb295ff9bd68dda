package libdow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
)

func pullAllWords(stream *godow.WordStream) []godow.Word {
	var words []godow.Word
	for w := range stream.Outlet {
		words = append(words, w)
	}
	return words
}

func TestEnumRawWords(t *testing.T) {
	// rank 0 is the empty word alone
	raw0 := pullAllWords(libdow.EnumRawWords(0))
	require.Len(t, raw0, 1)
	require.Empty(t, raw0[0])

	raw1 := pullAllWords(libdow.EnumRawWords(1))
	require.Len(t, raw1, 2)
	require.True(t, raw1[0].Equal(mustWord(t, "(1,1)")))
	require.True(t, raw1[1].Equal(mustWord(t, "(1,-1)")))

	// each rank multiplies the count by 2(2k-1)
	raw2 := pullAllWords(libdow.EnumRawWords(2))
	require.Len(t, raw2, 12)
	raw3 := pullAllWords(libdow.EnumRawWords(3))
	require.Len(t, raw3, 120)

	for _, w := range raw2 {
		require.Len(t, w, 4)

		// each magnitude occurs exactly twice, ignoring signs
		counts := map[godow.Letter]int{}
		for _, letter := range w {
			if letter < 0 {
				letter = -letter
			}
			counts[letter]++
		}
		require.Equal(t, map[godow.Letter]int{1: 2, 2: 2}, counts, "word %v", w)

		// enumerated words are already in normalized form
		require.True(t, w.Equal(libdow.Normalize(w)), "word %v not canonical", w)
	}
}

func TestEnumGoodWords(t *testing.T) {
	good1 := pullAllWords(libdow.EnumGoodWords(1))
	require.Empty(t, good1, "no good words exist over one generator")

	good2 := pullAllWords(libdow.EnumGoodWords(2))
	want := []string{
		"(1,1,2,2)",
		"(1,2,1,2)",
		"(1,2,-1,2)",
		"(1,2,1,-2)",
		"(1,2,-1,-2)",
	}
	require.Len(t, good2, len(want))
	for i, expr := range want {
		require.True(t, good2[i].Equal(mustWord(t, expr)),
			"good word %d = %v, want %v", i, good2[i], expr)
	}
}
