//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"chroma-ca/internal/app"
	_ "chroma-ca/internal/sims/chroma"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle(windowTitle(sim.Name()))
	// Ticks are paced by the game's fixed step; keep frames at the default rate.
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
