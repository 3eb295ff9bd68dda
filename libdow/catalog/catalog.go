package catalog

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState

	kWordEntry, alphabet (byte), WordLSM => nil
		(UserMeta uses Flag_IsOrbitRep)
	...

Every entry is keyed by the cyclic normal form of the word added, so all
rotations, inversions, and relabelings of a word land on the same key.
One entry per discovered orbit additionally carries Flag_IsOrbitRep,
which allows:
	1) enumerating all orbit representatives for a given alphabet size
	2) checking if a given word's orbit has already been witnessed
	3) per-alphabet word and orbit tallies without a table walk

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const kWordEntry = byte(0x10)

// catalogState is the persisted tally block of a catalog.
type catalogState struct {
	MajorVers   uint32
	MinorVers   uint32
	AlphabetMax int32
	NumWords    []uint64
	NumOrbits   []uint64
}

func (state *catalogState) Marshal() []byte {
	buf := make([]byte, 0, 16+10*(len(state.NumWords)+len(state.NumOrbits)))
	buf = binary.AppendUvarint(buf, uint64(state.MajorVers))
	buf = binary.AppendUvarint(buf, uint64(state.MinorVers))
	buf = binary.AppendUvarint(buf, uint64(state.AlphabetMax))
	buf = binary.AppendUvarint(buf, uint64(len(state.NumWords)))
	for _, n := range state.NumWords {
		buf = binary.AppendUvarint(buf, n)
	}
	buf = binary.AppendUvarint(buf, uint64(len(state.NumOrbits)))
	for _, n := range state.NumOrbits {
		buf = binary.AppendUvarint(buf, n)
	}
	return buf
}

func (state *catalogState) Unmarshal(src []byte) error {
	readUvarint := func() (uint64, error) {
		v, n := binary.Uvarint(src)
		if n <= 0 {
			return 0, godow.ErrUnmarshal
		}
		src = src[n:]
		return v, nil
	}

	var err error
	var v uint64
	if v, err = readUvarint(); err != nil {
		return err
	}
	state.MajorVers = uint32(v)
	if v, err = readUvarint(); err != nil {
		return err
	}
	state.MinorVers = uint32(v)
	if v, err = readUvarint(); err != nil {
		return err
	}
	state.AlphabetMax = int32(v)

	if v, err = readUvarint(); err != nil {
		return err
	}
	state.NumWords = make([]uint64, v)
	for i := range state.NumWords {
		if state.NumWords[i], err = readUvarint(); err != nil {
			return err
		}
	}
	if v, err = readUvarint(); err != nil {
		return err
	}
	state.NumOrbits = make([]uint64, v)
	for i := range state.NumOrbits {
		if state.NumOrbits[i], err = readUvarint(); err != nil {
			return err
		}
	}
	return nil
}

// catalog is a db wrapper for a double occurrence word census catalog
type catalog struct {
	ctx          godow.CatalogContext
	stateDirty   bool
	state        catalogState
	db           *badger.DB
	CatalogDesig string
}

func OpenCatalog(ctx godow.CatalogContext, opts godow.CatalogOpts) (godow.Catalog, error) {

	if opts.AlphabetMax <= 0 {
		opts.AlphabetMax = godow.MaxGenerators
	}
	if opts.AlphabetMax > godow.MaxGenerators {
		return nil, errors.Wrapf(godow.ErrBadCatalogParam, "AlphabetMax must be <= %d", godow.MaxGenerators)
	}

	cat := &catalog{
		ctx:          ctx,
		CatalogDesig: "W1",
	}

	dbOpts := badger.DefaultOptions("").WithInMemory(true)
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = 2026
		cat.state.MinorVers = 1
		cat.state.AlphabetMax = opts.AlphabetMax
		cat.state.NumWords = make([]uint64, opts.AlphabetMax+1)
		cat.state.NumOrbits = make([]uint64, opts.AlphabetMax+1)
	}

	if err == nil {
		if cat.state.MajorVers != 2026 || cat.state.MinorVers != 1 {
			err = errors.New("catalog version is incompatible")
		} else if opts.AlphabetMax > cat.state.AlphabetMax {
			err = errors.New("catalog's AlphabetMax is below the requested AlphabetMax")
		}
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) NumWords(forAlphabet byte) int64 {
	if forAlphabet == 0 || int(forAlphabet) >= len(cat.state.NumWords) {
		return 0
	}
	return int64(cat.state.NumWords[forAlphabet])
}

func (cat *catalog) NumOrbits(forAlphabet byte) int64 {
	if forAlphabet == 0 || int(forAlphabet) >= len(cat.state.NumOrbits) {
		return 0
	}
	return int64(cat.state.NumOrbits[forAlphabet])
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
	return err
}

func (cat *catalog) flushState() {
	if cat.stateDirty {
		err := cat.db.Update(func(txn *badger.Txn) error {
			return txn.Set(gCatalogStateKey, cat.state.Marshal())
		})
		if err != nil {
			panic(err)
		}
		cat.stateDirty = false
	}
}

func (cat *catalog) Close() error {
	cat.flushState()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return nil
}

// formWordKey appends the catalog key of w's cyclic normal form: a table
// prefix, the alphabet size, then the canonical word encoding.
func formWordKey(key []byte, w godow.Word) ([]byte, byte) {
	canonic := libdow.CyclicNormalize(w)
	alphabet := canonic.GetInfo().Alphabet

	key = append(key, kWordEntry, alphabet)
	key = canonic.AppendWordLSM(key)
	return key, alphabet
}

// alphabetInRange reports whether the catalog's tally block (and so its
// word table) admits words over the given alphabet size.
func (cat *catalog) alphabetInRange(alphabet byte) bool {
	return int32(alphabet) <= cat.state.AlphabetMax
}

// TryAddWord adds the given word's class if it doesn't already exist.
//
// If true is returned, no equivalent word was present and the word was added.
// Words over more generators than the catalog was opened for are never added.
func (cat *catalog) TryAddWord(w godow.Word) bool {
	var keyBuf [godow.MaxWordLen + 8]byte
	wordKey, alphabet := formWordKey(keyBuf[:0], w)
	if !cat.alphabetInRange(alphabet) {
		return false
	}

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(wordKey)
	if err == nil {
		return false
	} else if err != badger.ErrKeyNotFound {
		panic(err)
	}

	// Alloc a scrap buf since we can't use the stack for commit bufs
	key := append(make([]byte, 0, len(wordKey)), wordKey...)
	if err = txn.Set(key, nil); err != nil {
		panic(err)
	}
	if err = txn.Commit(); err != nil {
		panic(err)
	}

	cat.state.NumWords[alphabet]++
	cat.stateDirty = true
	return true
}

func (cat *catalog) HasWord(w godow.Word) bool {
	var keyBuf [godow.MaxWordLen + 8]byte
	wordKey, alphabet := formWordKey(keyBuf[:0], w)
	if !cat.alphabetInRange(alphabet) {
		return false
	}

	found := false
	err := cat.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(wordKey)
		if err == nil {
			found = true
			return nil
		}
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		panic(err)
	}
	return found
}

// MarkOrbit flags the given word's class entry as an orbit representative,
// adding the entry if its class was never added.
func (cat *catalog) MarkOrbit(w godow.Word) error {
	var keyBuf [godow.MaxWordLen + 8]byte
	wordKey, alphabet := formWordKey(keyBuf[:0], w)
	if !cat.alphabetInRange(alphabet) {
		return errors.Wrapf(godow.ErrLetterRange, "alphabet %d exceeds the catalog's AlphabetMax of %d", alphabet, cat.state.AlphabetMax)
	}

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	isNewWord := false
	alreadyMarked := false
	item, err := txn.Get(wordKey)
	if err == badger.ErrKeyNotFound {
		isNewWord = true
	} else if err != nil {
		panic(err)
	} else {
		alreadyMarked = (item.UserMeta() & godow.Flag_IsOrbitRep) != 0
	}

	if alreadyMarked {
		return nil
	}

	key := append(make([]byte, 0, len(wordKey)), wordKey...)
	err = txn.SetEntry(badger.NewEntry(key, nil).WithMeta(godow.Flag_IsOrbitRep))
	if err != nil {
		panic(err)
	}
	if err = txn.Commit(); err != nil {
		panic(err)
	}

	if isNewWord {
		cat.state.NumWords[alphabet]++
	}
	cat.state.NumOrbits[alphabet]++
	cat.stateDirty = true
	return nil
}

// SelectOrbitReps walks the word table for one alphabet size and pushes
// every entry flagged as an orbit representative.
func (cat *catalog) SelectOrbitReps(forAlphabet byte, onHit godow.OnWordHit) {
	defer close(onHit)

	prefix := [2]byte{kWordEntry, forAlphabet}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
		Prefix:         prefix[:],
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		if (item.UserMeta() & godow.Flag_IsOrbitRep) == 0 {
			continue
		}

		var w godow.Word
		if err := w.InitFromWordLSM(item.Key()[2:]); err != nil {
			panic(err)
		}
		onHit <- w
	}
}
