package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/maseology/mmio"
	"github.com/wobrien3/EXPOsan/metab"
)

func main() {
	reactor := flag.String("reactor", "UASB", "reactor kind: UASB, FB or PB")
	stages := flag.Int("stages", 1, "number of stages (1 or 2)")
	mode := flag.String("mode", "P", "gas extraction: P, M or H")
	td := flag.Float64("t", 60., "integration horizon [d]")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete")

	cfg := metab.DefaultConfig()
	cfg.Reactor = *reactor
	cfg.Stages = *stages
	cfg.GasExtraction = (*mode)[0]

	p, err := metab.CreateSystem(cfg)
	if err != nil {
		log.Fatalf(" metab build error: %v\n", err)
	}
	if err := p.Sys.SimulateDynamic(0., *td, .02, nil); err != nil {
		log.Fatalf(" metab integration error: %v\n", err)
	}

	last := p.R1
	if p.R2 != nil {
		last = p.R2
	}
	fmt.Printf(" effluent COD: %.3f kg/m3\n", last.EffluentCOD())
	fmt.Printf(" fugitive CH4: %.4f kg/h\n", p.FugitiveCH4())
	fmt.Printf(" natural-gas equivalent: %.3f m3/h\n", p.NGEquivalent())
	fmt.Printf(" installed cost: $%.0f\n", p.TEA.CAPEX())
	tot, err := p.LCA.TotalImpacts()
	if err != nil {
		log.Fatalf(" metab LCA error: %v\n", err)
	}
	fmt.Printf(" lifetime GWP: %.0f kg CO2e\n", tot["GlobalWarming"])
}
