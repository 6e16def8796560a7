package main

import "testing"

func TestWindowTitle(t *testing.T) {
	if got := windowTitle("chroma-legacy"); got != "chroma-ca: chroma-legacy" {
		t.Fatalf("windowTitle = %q", got)
	}
}
