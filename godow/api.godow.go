package godow

const (

	// MaxGenerators is the max alphabet size a Word may draw letters from.
	// The census is only practical for much smaller alphabets (n <= 6), but the
	// encodings below stay valid up to this bound.
	MaxGenerators = 12

	// MaxWordLen is the max length of a double-occurrence word over MaxGenerators.
	MaxWordLen = 2 * MaxGenerators
)

// Letter is a signed free-group generator: the magnitude selects the
// generator, the sign selects the generator or its inverse.  Zero is invalid.
type Letter int8

// Word is an element of a free group in letter-sequence (not necessarily
// reduced) form.
type Word []Letter

// WordLSM is an LSM binary encoding / symbol of a Word.
type WordLSM []byte

// WordInfo summarizes a Word for selection and catalog bookkeeping.
type WordInfo struct {
	Alphabet byte // number of distinct generator magnitudes in play
	Length   byte // letter count
}

// OnWordHit is a callback channel used to return Words meeting a set of
// selection criteria.
type OnWordHit chan<- Word

// Flag_IsOrbitRep marks a catalog entry as its orbit's chosen representative.
const Flag_IsOrbitRep byte = 0x01

// WordAdder accepts Words into a dedup set or catalog.
type WordAdder interface {

	// Tries to add the given word to this set, keyed by its canonical form.
	// If true is returned, the word's class was not present and was added.
	TryAddWord(w Word) bool
}

// Catalog wraps a store of canonical word encodings accumulated during a
// census run: every member of every discovered orbit, plus one flagged
// representative entry per orbit.
type Catalog interface {
	WordAdder

	// HasWord returns whether the given word's canonical form is present.
	HasWord(w Word) bool

	// MarkOrbit records one orbit-representative entry for the given word and
	// bumps the per-alphabet orbit count.  Words over more generators than
	// the catalog admits are rejected with an error.
	MarkOrbit(w Word) error

	// NumOrbits returns the number of orbit representatives recorded for a
	// given alphabet size (one-based; out of bounds returns 0).
	NumOrbits(forAlphabet byte) int64

	// NumWords returns the number of distinct canonical words recorded for a
	// given alphabet size (one-based; out of bounds returns 0).
	NumWords(forAlphabet byte) int64

	// SelectOrbitReps pushes every orbit representative recorded for the
	// given alphabet size to onHit, in catalog key order, then closes onHit.
	SelectOrbitReps(forAlphabet byte, onHit OnWordHit)

	Close() error
}

// CatalogOpts specifies params for opening a Catalog.
type CatalogOpts struct {
	AlphabetMax int32 // highest alphabet size this catalog will see; 0 means MaxGenerators
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Signals all open catalogs to close, then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed.
	Done() <-chan struct{}
}

// PrintOpts specifies what is printed when printing a word.
type PrintOpts struct {
	Label    string // Prefix label
	Alphabet bool   // If set, prints the alphabet size ("n=2,")
	Length   bool   // If set, prints the letter count ("len=4,")
}

// DefaultPrintOpts prints the alphabet size and the word literal.
var DefaultPrintOpts = PrintOpts{
	Alphabet: true,
}
