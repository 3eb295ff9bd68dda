package libdow

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/dow-systems/godow/godow"
)

// CanonicSet allows adding canonical encodings of words and reporting whether an equivalent word has already been added.
type CanonicSet interface {

	// TryAddWord adds the cyclic normal form of w if it is not already present.
	//
	// If an equivalent word is already in this CanonicSet, this call has no effect and TryAddWord() returns false.
	// If no equivalent word is in this set, w is added and TryAddWord() returns true.
	//
	// After one or more calls to TryAddWord(), call Close() for cleanup.
	TryAddWord(w godow.Word) bool

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAddWord(), be sure you call Close() when you're done.
	Close()
}

func NewCanonicSet() CanonicSet {
	return &canonicSet{}
}

type canonicSet struct {
	lsmSet
}

func (cs *canonicSet) TryAddWord(w godow.Word) bool {
	var buf [godow.MaxWordLen + 8]byte
	key := CyclicNormalize(w).AppendWordLSM(buf[:0])
	return cs.tryAdd(key)
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
