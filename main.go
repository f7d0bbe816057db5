package main

import (
	"fmt"
	"log"

	"github.com/meenmo/marketmodel/evolution"
)

func main() {
	rateTimes := []float64{0, 1, 2, 3}

	d, err := evolution.NewDescription(rateTimes, nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	mm := evolution.MoneyMarketMeasure(d)
	if err := evolution.CheckCompatibility(d, mm); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Evolution times: %v\n", d.EvolutionTimes())
	fmt.Printf("Rate taus: %v\n", d.RateTaus())
	fmt.Printf("First alive rate: %v\n", d.FirstAliveRate())
	fmt.Printf("Money-market measure: %v\n", mm)
	fmt.Printf("Terminal measure: %v\n", evolution.TerminalMeasure(d))
}
