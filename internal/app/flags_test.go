package app

import (
	"flag"
	"strings"
	"testing"

	_ "chroma-ca/internal/sims/chroma"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-sim", "chroma-legacy", "-scale", "2", "-tps", "12", "-seed", "5",
		"-set", "w=8", "-set", "h = 6", "-set", "w=10"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim != "chroma-legacy" || cfg.Scale != 2 || cfg.TPS != 12 || cfg.Seed != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	params := cfg.Params()
	if params["w"] != "10" || params["h"] != "6" {
		t.Fatalf("unexpected overrides %v", params)
	}
}

func TestSetRejectsMalformedOverride(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatal("expected malformed override to fail")
	}
}

func TestBuild(t *testing.T) {
	cfg := NewConfig()
	cfg.Set = KVList{"w=5", "h=4"}
	sim, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if size := sim.Size(); size.W != 5 || size.H != 4 {
		t.Fatalf("unexpected size %+v", size)
	}
	if err := sim.Step(); err != nil {
		t.Fatal(err)
	}

	cfg.Sim = "missing"
	if _, err := cfg.Build(); err == nil || !strings.Contains(err.Error(), "chroma") {
		t.Fatalf("expected unknown sim error listing available sims, got %v", err)
	}

	cfg.Sim = "chroma"
	cfg.Set = KVList{"red_mode=wild"}
	if _, err := cfg.Build(); err == nil {
		t.Fatal("expected invalid override to fail")
	}
}
