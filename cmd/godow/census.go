package main

import (
	"os"
	"time"

	"github.com/plan-systems/klog"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
	"github.com/dow-systems/godow/libdow/catalog"
)

// runCensus enumerates orbit witnesses for each alphabet size in
// [nMin, nMax] and prints one line per orbit.
func runCensus(nMin, nMax int, withCatalog bool) {
	if nMin < 1 {
		nMin = 1
	}
	if nMax > godow.MaxGenerators {
		klog.Fatalf("census: alphabet size max is %d", godow.MaxGenerators)
	}

	opts := libdow.CensusOpts{
		Orbit: libdow.OrbitOpts{
			LogEvery: 5 * time.Second,
		},
	}

	var ctx godow.CatalogContext
	if withCatalog {
		ctx = godow.NewCatalogContext()
		cat, err := catalog.OpenCatalog(ctx, godow.CatalogOpts{
			AlphabetMax: int32(nMax),
		})
		if err != nil {
			klog.Fatalf("census: %v", err)
		}
		opts.Catalog = cat
	}

	reps := libdow.CensusStream(nMin, nMax, opts).
		Print(os.Stdout, godow.PrintOpts{
			Label:    "census",
			Alphabet: true,
			Length:   true,
		})
	total := reps.PullAll()

	if opts.Catalog != nil {
		for n := nMin; n <= nMax; n++ {
			klog.Infof("n=%d: %d orbits over %d words", n,
				opts.Catalog.NumOrbits(byte(n)), opts.Catalog.NumWords(byte(n)))
		}
	}
	klog.Infof("census complete: %d orbits total", total)

	if ctx != nil {
		ctx.Close()
		<-ctx.Done()
	}
}
