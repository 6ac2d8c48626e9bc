package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/maseology/mmio"
	"github.com/wobrien3/EXPOsan/geosp"
)

func main() {
	facFP := flag.String("facilities", "AMO_results.xlsx", "facility workbook")
	refFP := flag.String("refineries", "petroleum_refineries_EIA.xlsx", "refinery workbook")
	stFP := flag.String("states", "state_elec_price_GHG.xlsx", "state electricity workbook")
	outFP := flag.String("o", "geospatial_model_input.xlsx", "joined output workbook")
	routeURL := flag.String("router", "", "routing endpoint (blank skips driving distances)")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete")

	facs, err := geosp.LoadFacilities(*facFP)
	if err != nil {
		log.Fatalf(" facility load error: %v\n", err)
	}
	refs, err := geosp.LoadRefineries(*refFP)
	if err != nil {
		log.Fatalf(" refinery load error: %v\n", err)
	}
	states, err := geosp.LoadStateTable(*stFP)
	if err != nil {
		log.Fatalf(" state table load error: %v\n", err)
	}
	tt.Print(fmt.Sprintf("loaded %d facilities, %d refineries\n", len(facs), len(refs)))

	var dc geosp.DistanceClient
	if *routeURL != "" {
		dc = geosp.NewHTTPDistanceClient(*routeURL)
	}
	recs, err := geosp.Analyze(facs, refs, states, dc)
	if err != nil {
		log.Fatalf(" analysis error: %v\n", err)
	}
	nNaN := 0
	for i := range recs {
		if recs[i].DrivingKm != recs[i].DrivingKm {
			nNaN++
		}
	}
	fmt.Printf(" %d records joined (%d without a driving distance)\n", len(recs), nNaN)

	if err := geosp.WriteRecords(*outFP, recs); err != nil {
		log.Fatalf(" write error: %v\n", err)
	}
	tt.Print(fmt.Sprintf("saved %s\n", *outFP))
}
