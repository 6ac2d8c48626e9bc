package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/maseology/mmio"
	"github.com/wobrien3/EXPOsan/htl"
)

func main() {
	n := flag.Int("n", 1000, "number of Latin-hypercube samples")
	seed := flag.Int64("seed", 3221, "sampler seed")
	outFP := flag.String("o", "htl_uncertainty.xlsx", "results workbook")
	smplFP := flag.String("samples", "", "optional sample-space dump")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	mdl := htl.CreateModel(htl.DefaultConfig())
	sc, err := mdl.Setup()
	if err != nil {
		log.Fatalf(" htl model setup error: %v\n", err)
	}
	base, err := sc.Baseline()
	if err != nil {
		log.Fatalf(" htl baseline error: %v\n", err)
	}
	for j, name := range sc.MetricNames() {
		if name == "MFSP" || name == "GWP_diesel" {
			fmt.Printf(" baseline %s: %.4f\n", name, base[j])
		}
	}
	tt.Print("baseline complete\n")

	tbl, err := mdl.EvaluateLHC(*n, runtime.GOMAXPROCS(0), *seed, *smplFP)
	if err != nil {
		log.Fatalf(" htl uncertainty error: %v\n", err)
	}
	fmt.Printf(" failure fraction: %.3f\n", tbl.FailureFraction())
	if err := tbl.WriteXLSX(*outFP, true); err != nil {
		log.Fatalf(" htl write error: %v\n", err)
	}
	tt.Print(fmt.Sprintf("saved %s\n", *outFP))
}
