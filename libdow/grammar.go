package libdow

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/dow-systems/godow/godow"
)

// WordExpr is one or more word literals separated by ";", e.g.
// "(1,2,-1,-2); (1,1,2,2)".  The parentheses around a literal are
// optional.
type WordExpr struct {
	Words []*WordLit `parser:"(@@ (\";\" @@)*)?"`
}

type WordLit struct {
	Letters []*LetterLit `parser:"\"(\" (@@ (\",\" @@)*)? \")\" | @@ (\",\" @@)*"`
}

type LetterLit struct {
	Neg bool  `parser:"@\"-\"?"`
	Mag int64 `parser:"@Int"`
}

var parseWordExpr = participle.MustBuild[WordExpr]()

// ParseWordExpr parses a word expression into its words.  Letters are
// checked against the alphabet bound but the words are otherwise taken
// as written, unreduced words pass through so callers can reduce or
// reject them as they see fit.
func ParseWordExpr(expr string) ([]godow.Word, error) {
	Wexpr, err := parseWordExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(godow.ErrBadWordExpr, "parsing %q: %v", expr, err)
	}

	words := make([]godow.Word, 0, len(Wexpr.Words))
	for _, lit := range Wexpr.Words {
		w := make(godow.Word, 0, len(lit.Letters))
		for _, letter := range lit.Letters {
			if letter.Mag == 0 {
				return nil, errors.Wrapf(godow.ErrZeroLetter, "in %q", expr)
			}
			if letter.Mag > godow.MaxGenerators {
				return nil, errors.Wrapf(godow.ErrLetterRange, "letter %d in %q", letter.Mag, expr)
			}
			mag := godow.Letter(letter.Mag)
			if letter.Neg {
				mag = -mag
			}
			w = append(w, mag)
		}
		if len(w) == 0 {
			return nil, errors.Wrapf(godow.ErrEmptyWord, "in %q", expr)
		}
		words = append(words, w)
	}
	return words, nil
}

// ParseWord parses a single word literal.
func ParseWord(expr string) (godow.Word, error) {
	words, err := ParseWordExpr(expr)
	if err != nil {
		return nil, err
	}
	if len(words) != 1 {
		return nil, errors.Wrapf(godow.ErrBadWordExpr, "expected one word in %q, got %d", expr, len(words))
	}
	return words[0], nil
}
