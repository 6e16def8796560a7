package main

func windowTitle(sim string) string {
	return "chroma-ca: " + sim
}
