package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"chroma-ca/internal/app"
	"chroma-ca/internal/core"
	"chroma-ca/internal/sims/chroma"
)

type statsProvider interface {
	Stats() [3]chroma.ChannelStats
	LastTick() [3]chroma.TickReport
}

func main() {
	cfg := app.NewConfig()
	steps := flag.Int("steps", 120, "number of ticks to simulate")
	every := flag.Int("every", 0, "print channel statistics every N ticks (0 prints only the final state)")
	flag.StringVar(&cfg.Sim, "sim", cfg.Sim, simUsage())
	flag.Int64Var(&cfg.Seed, "seed", 1337, "seed used for the initial reset")
	flag.Var(&cfg.Set, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	size := sim.Size()
	log.Printf("probing %s %dx%d seed=%d for %d ticks", sim.Name(), size.W, size.H, cfg.Seed, *steps)

	start := time.Now()
	for i := 1; i <= *steps; i++ {
		if err := sim.Step(); err != nil {
			log.Fatalf("tick %d: %v", i, err)
		}
		if *every > 0 && i%*every == 0 && i != *steps {
			report(sim, i)
		}
	}
	elapsed := time.Since(start)
	report(sim, *steps)
	if *steps > 0 {
		log.Printf("%d ticks in %s (%s/tick)", *steps, elapsed.Round(time.Millisecond), (elapsed / time.Duration(*steps)).Round(time.Microsecond))
	}
}

func simUsage() string {
	return "simulation to probe (" + strings.Join(app.SimNames(), ", ") + ")"
}

func report(sim core.Sim, tick int) {
	sp, ok := sim.(statsProvider)
	if !ok {
		log.Printf("tick %d: %s exposes no statistics", tick, sim.Name())
		return
	}
	stats := sp.Stats()
	ticks := sp.LastTick()
	for _, c := range chroma.Colors {
		st := stats[c]
		tr := ticks[c]
		log.Printf("tick %d %-5s min=%.4f max=%.4f mean=%.4f nonzero=%d nan=%d scan=%s apply=%s",
			tick, c, st.Min, st.Max, st.Mean, st.NonZero, st.NaN,
			tr.Scan.Round(time.Microsecond), tr.Apply.Round(time.Microsecond))
	}
}
