package godow

import "errors"

// Errors
var (
	ErrUnmarshal       = errors.New("unmarshal failed")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrZeroLetter      = errors.New("word contains a zero letter")
	ErrLetterRange     = errors.New("letter magnitude outside alphabet range")
	ErrEmptyWord       = errors.New("empty word")
	ErrNotReduced      = errors.New("word is not cyclically reduced")
	ErrBadWordExpr     = errors.New("bad word expression")
	ErrOrbitBudget     = errors.New("orbit class budget exceeded")
)
