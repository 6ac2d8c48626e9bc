package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/maseology/mmio"
	"github.com/wobrien3/EXPOsan/bsm1"
)

func main() {
	td := flag.Float64("t", 50., "integration horizon [d]")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete")

	p, err := bsm1.Load()
	if err != nil {
		log.Fatalf(" bsm1 load error: %v\n", err)
	}
	tt.Print("plant assembled\n")

	if err := p.Simulate(*td); err != nil {
		log.Fatalf(" bsm1 integration error: %v\n", err)
	}
	fmt.Printf(" effluent COD: %.2f g/m3\n", p.EffluentCOD())
	fmt.Printf(" effluent TSS: %.2f g/m3\n", p.EffluentTSS())
	fmt.Printf(" return sludge TSS: %.1f g/m3\n", p.RecycleTSS())
}
