package godow

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
)

// Clone returns a private copy of this Word.
func (w Word) Clone() Word {
	cp := make(Word, len(w))
	copy(cp, w)
	return cp
}

// Equal returns whether two words have identical letter sequences.
func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i, wi := range w {
		if wi != other[i] {
			return false
		}
	}
	return true
}

// Compare imposes the total order used for picking canonical minima:
// shorter words sort first, equal-length words compare lexicographically on
// their letter sequences.
func (w Word) Compare(other Word) int {
	if d := len(w) - len(other); d != 0 {
		return d
	}
	for i, wi := range w {
		if d := int(wi) - int(other[i]); d != 0 {
			return d
		}
	}
	return 0
}

// Rotate returns the cyclic rotation of this word by k positions
// (w[k:] followed by w[:k]).
func (w Word) Rotate(k int) Word {
	m := len(w)
	if m == 0 {
		return Word{}
	}
	k = ((k % m) + m) % m
	out := make(Word, 0, m)
	out = append(out, w[k:]...)
	out = append(out, w[:k]...)
	return out
}

// Invert returns the free-group inverse of this word: reversed order, each
// letter negated.
func (w Word) Invert() Word {
	m := len(w)
	out := make(Word, m)
	for i, wi := range w {
		out[m-1-i] = -wi
	}
	return out
}

// Validate fails fast on ill-formed input: zero letters, magnitudes outside
// [1, n], or an empty word.
func (w Word) Validate(n int) error {
	if len(w) == 0 {
		return ErrEmptyWord
	}
	if n < 1 || n > MaxGenerators {
		return ErrLetterRange
	}
	for _, wi := range w {
		if wi == 0 {
			return ErrZeroLetter
		}
		mag := wi
		if mag < 0 {
			mag = -mag
		}
		if int(mag) > n {
			return ErrLetterRange
		}
	}
	return nil
}

// GetInfo returns summary info about this word.
func (w Word) GetInfo() WordInfo {
	info := WordInfo{
		Length: byte(len(w)),
	}
	for _, wi := range w {
		mag := wi
		if mag < 0 {
			mag = -mag
		}
		if byte(mag) > info.Alphabet {
			info.Alphabet = byte(mag)
		}
	}
	return info
}

// AppendWordLSM appends a canonical binary encoding of w to out, returning it
// as a WordLSM.  Two words have equal encodings exactly when they are Equal.
func (w Word) AppendWordLSM(out []byte) WordLSM {
	var scrap [binary.MaxVarintLen64]byte
	key := out
	key = append(key, byte(len(w)))
	for _, wi := range w {
		n := binary.PutVarint(scrap[:], int64(wi))
		key = append(key, scrap[:n]...)
	}
	return key
}

// InitFromWordLSM assigns this Word from a binary encoding made by
// AppendWordLSM.
func (w *Word) InitFromWordLSM(key WordLSM) error {
	if len(key) == 0 {
		return ErrUnmarshal
	}
	wordLen := int(key[0])
	out := (*w)[:0]
	rdr := bytes.NewReader(key[1:])
	for i := 0; i < wordLen; i++ {
		letter, err := binary.ReadVarint(rdr)
		if err != nil {
			return ErrUnmarshal
		}
		out = append(out, Letter(letter))
	}
	*w = out
	return nil
}

// String returns the word literal form, e.g. "(1,2,-1,-2)".
func (w Word) String() string {
	b := strings.Builder{}
	b.Grow(4 * len(w))
	w.writeLiteral(&b)
	return b.String()
}

func (w Word) writeLiteral(out io.Writer) {
	var buf [8]byte
	out.Write(lparen)
	for i, wi := range w {
		if i > 0 {
			out.Write(comma)
		}
		out.Write(PrintInt(buf[:], int64(wi)))
	}
	out.Write(rparen)
}

var (
	quote  = []byte("\"")
	comma  = []byte(",")
	lparen = []byte("(")
	rparen = []byte(")")
)

// WriteAsString writes this word in census output form.
func (w Word) WriteAsString(out io.Writer, opts PrintOpts) {
	var buf [8]byte
	if opts.Alphabet {
		out.Write([]byte("n="))
		out.Write(PrintInt(buf[:], int64(w.GetInfo().Alphabet)))
		out.Write(comma)
	}
	if opts.Length {
		out.Write([]byte("len="))
		out.Write(PrintInt(buf[:], int64(len(w))))
		out.Write(comma)
	}
	out.Write(quote)
	w.writeLiteral(out)
	out.Write(quote)
}

// PrintInt prints the given integer in base 10, right justified in the buffer.
// Returns the tight-fitting slice of the output digits (a slice of dst).
func PrintInt(dst []byte, val int64) []byte {
	sign := int(1)
	if val < 0 {
		sign = -1
		val = -val
	}
	L := len(dst)
	i := L
	for {
		next := val / 10
		digit := val - 10*next
		val = next
		i--
		dst[i] = '0' + byte(digit)
		if val == 0 {
			break
		}
	}
	if sign < 0 {
		i--
		dst[i] = '-'
	}
	return dst[i:]
}
