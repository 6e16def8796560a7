//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"chroma-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	statusColor     = color.RGBA{R: 150, G: 170, B: 150, A: 255}
	sectionColor    = color.RGBA{R: 230, G: 210, B: 150, A: 255}
	summaryColor    = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor      = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	buttonOn        = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff       = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// placedRow is a model row with its panel coordinates for the current frame.
type placedRow struct {
	row    hudRow
	top    int
	bounds image.Rectangle
	minus  image.Rectangle
	plus   image.Rectangle
}

// HUD renders the parameter panel to the right of the simulation view.
// Sections collapse on click and the panel scrolls with the mouse wheel.
type HUD struct {
	model *hudModel
	width int
	title string

	panel      *ebiten.Image
	lastHeight int

	panelOffsetX int
	scroll       int
	placed       []placedRow
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	title := "Controls"
	if sim != nil && sim.Name() != "" {
		title = sim.Name() + " controls"
	}
	return &HUD{model: newHUDModel(sim), width: width, title: title}
}

// Update refreshes parameter values and handles clicks and scrolling.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.model.refresh()
	h.handleInput()
	h.layout()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.model.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
		h.layout()
	}
	h.panel.Fill(panelBackground)
	h.drawHeader()
	h.drawRows()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) contentTop() int {
	return panelPadding + headerBaseline + statusSpacing*len(h.model.status) + sectionGap
}

// layout assigns panel coordinates to the visible rows and clamps scrolling.
func (h *HUD) layout() {
	rows := h.model.rows()
	total := 0
	for _, r := range rows {
		total += rowHeight(r)
	}
	if h.lastHeight > 0 {
		maxScroll := total - (h.lastHeight - h.contentTop())
		h.scroll = min(h.scroll, max(maxScroll, 0))
	}
	h.scroll = max(h.scroll, 0)

	h.placed = h.placed[:0]
	y := h.contentTop() - h.scroll
	right := h.width - panelPadding
	for _, r := range rows {
		height := rowHeight(r)
		p := placedRow{row: r, top: y, bounds: image.Rect(0, y, h.width, y+height)}
		if r.control >= 0 {
			buttonY := y + (height-buttonSize)/2
			p.plus = image.Rect(right-buttonSize, buttonY, right, buttonY+buttonSize)
			p.minus = image.Rect(p.plus.Min.X-buttonGap-buttonSize, buttonY, p.plus.Min.X-buttonGap, buttonY+buttonSize)
		}
		h.placed = append(h.placed, p)
		y += height
	}
}

func rowHeight(r hudRow) int {
	if r.control < 0 {
		return sectionHeight
	}
	return lineHeight
}

func (h *HUD) visible(p placedRow) bool {
	return p.top >= h.contentTop() && (h.lastHeight == 0 || p.bounds.Max.Y <= h.lastHeight)
}

func (h *HUD) handleInput() {
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX
	if px < 0 || px >= h.width {
		return
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		h.scroll -= int(wy * lineHeight)
		h.layout()
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	pt := image.Pt(px, my)
	for _, p := range h.placed {
		if !h.visible(p) || !pt.In(p.bounds) {
			continue
		}
		switch {
		case p.row.control < 0:
			h.model.toggleSection(p.row.section)
		case pt.In(p.minus):
			h.model.adjust(p.row.control, -1)
		case pt.In(p.plus):
			h.model.adjust(p.row.control, 1)
		}
		return
	}
}

func (h *HUD) drawHeader() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	for i, line := range h.model.status {
		text.Draw(h.panel, line, face, panelPadding, y+statusSpacing*(i+1), statusColor)
	}
	if len(h.model.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, h.contentTop()+labelBaseline, mutedColor)
	}
}

func (h *HUD) drawRows() {
	face := basicfont.Face7x13
	for _, p := range h.placed {
		if !h.visible(p) {
			continue
		}
		baseline := p.top + labelBaseline
		if p.row.control < 0 {
			sec := h.model.sections[p.row.section]
			marker := "- "
			if sec.collapsed {
				marker = "+ "
			}
			text.Draw(h.panel, marker+sec.name, face, panelPadding, baseline, sectionColor)
			if sec.summary != "" {
				x := panelPadding + text.BoundString(face, marker+sec.name).Dx() + 8
				text.Draw(h.panel, sec.summary, face, x, baseline, summaryColor)
			}
			continue
		}

		state := h.model.controls[p.row.control]
		text.Draw(h.panel, state.control.Label, face, panelPadding, baseline, labelColor)
		valueColor := labelColor
		if !state.has {
			valueColor = mutedColor
		}
		valueX := p.minus.Min.X - buttonGap - text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, valueX, baseline, valueColor)

		minusLabel, plusLabel := "-", "+"
		if state.control.Type == core.ParamTypeString {
			minusLabel, plusLabel = "<", ">"
		}
		h.drawButton(p.minus, minusLabel, h.model.canAdjust(p.row.control, -1))
		h.drawButton(p.plus, plusLabel, h.model.canAdjust(p.row.control, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonOn, labelColor
	if !enabled {
		bg, fg = buttonOff, mutedColor
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

const (
	panelPadding   = 12
	headerBaseline = 18
	statusSpacing  = 15
	sectionGap     = 10
	sectionHeight  = 20
	lineHeight     = 22
	labelBaseline  = 15
	buttonSize     = 18
	buttonGap      = 4
)
