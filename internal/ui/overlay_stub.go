//go:build !ebiten

package ui

import (
	"chroma-ca/internal/core"
	"chroma-ca/internal/render"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Mask reports every channel in headless builds.
func (o *Overlay) Mask() render.ChannelMask { return render.MaskAll }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
