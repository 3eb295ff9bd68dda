package main

import (
	"flag"

	"github.com/plan-systems/klog"
)

func main() {

	censusMin := flag.Int("census-min", 1, "first alphabet size of a census run")
	censusMax := flag.Int("census-max", 0, "run a census through this alphabet size and exit")
	withCatalog := flag.Bool("catalog", true, "accumulate census results in a catalog")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	if *censusMax > 0 {
		runCensus(*censusMin, *censusMax, *withCatalog)
	} else {
		pathname := flag.Arg(0)
		go_gpython(pathname)
	}

	klog.Flush()
}
