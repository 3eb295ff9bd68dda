package libdow

import (
	"github.com/dow-systems/godow/godow"
)

// EnumRawWords streams every double occurrence word over n generators in
// which generator magnitudes first appear in increasing order and each
// first occurrence is positive.  Words arrive in a fixed depth-first
// order, generated lazily as the consumer pulls from the stream.
//
// Each word of the previous rank spawns its children by shifting every
// magnitude up by one, prepending the new generator 1, and inserting its
// second occurrence (with either sign) at every position after the first.
func EnumRawWords(n int) *godow.WordStream {
	stream := godow.NewWordStream()
	go func() {
		if n >= 0 {
			emitRawWords(stream, godow.Word{}, n)
		}
		stream.Close()
	}()
	return stream
}

func emitRawWords(stream *godow.WordStream, w godow.Word, remain int) {
	if remain == 0 {
		stream.Outlet <- w
		return
	}

	shifted := make(godow.Word, len(w))
	for i, wi := range w {
		if wi < 0 {
			shifted[i] = wi - 1
		} else {
			shifted[i] = wi + 1
		}
	}

	for i := 0; i <= len(shifted); i++ {
		for _, second := range [2]godow.Letter{1, -1} {
			child := make(godow.Word, 0, len(shifted)+2)
			child = append(child, 1)
			child = append(child, shifted[:i]...)
			child = append(child, second)
			child = append(child, shifted[i:]...)
			emitRawWords(stream, child, remain-1)
		}
	}
}

// EnumGoodWords streams the words of EnumRawWords that survive the census
// admission test: freely reduced with endpoints neither equal nor mutual
// inverses.
func EnumGoodWords(n int) *godow.WordStream {
	return EnumRawWords(n).SelectFunc(IsGoodWord)
}
