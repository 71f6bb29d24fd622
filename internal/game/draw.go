package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/neuroforge/internal/prompt"
)

const (
	glyphW = 7
	lineH  = 15
)

var (
	colBackground = mustHex("#0a0a1a")
	colPanel      = mustHex("#16162b")
	colBorder     = mustHex("#00ffff")
	colButton     = mustHex("#7b2ff7")
	colText       = mustHex("#e6e6f0")
	colMuted      = mustHex("#808090")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func withAlpha(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.frame.Replay(screenCanvas{dst: screen, bg: colBackground})

	g.drawForm(screen)
	g.drawResult(screen)
	g.drawToasts(screen)

	ebitenutil.DebugPrintAt(screen, "NeuroForge  |  Ctrl+Enter: generate  Esc: quit", 12, 12)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, width float32, c color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), width, c, false)
}

func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func drawLabel(dst *ebiten.Image, s string, x, y int, c color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, c)
}

func drawCentered(dst *ebiten.Image, s string, r image.Rectangle, c color.Color) {
	w := len([]rune(s)) * glyphW
	drawLabel(dst, s, r.Min.X+(r.Dx()-w)/2, r.Min.Y+r.Dy()/2+4, c)
}

func drawButton(dst *ebiten.Image, b *button, label string, tint colorful.Color) {
	base := tint
	switch {
	case b.disabled:
		base = tint.BlendLab(colMuted, 0.6)
	case b.pressed:
		base = tint.BlendLab(colBackground, 0.3)
	case b.hovered:
		base = tint.BlendLab(colBorder, 0.25)
	}
	fillRect(dst, b.rect, withAlpha(base, 230))
	strokeRect(dst, b.rect, 2, withAlpha(colBorder.BlendLab(base, 0.5), 255))
	drawCentered(dst, label, b.rect, colText)
}

func (g *Game) drawForm(dst *ebiten.Image) {
	l := g.lay

	drawLabel(dst, "Describe the artwork you want", l.input.Min.X, l.input.Min.Y-12, colText)

	fillRect(dst, l.input, withAlpha(colPanel, 220))
	strokeRect(dst, l.input, 1, withAlpha(colBorder, 160))

	cols := (l.input.Dx() - 16) / glyphW
	lines := wrapText(g.input.Value(), cols)
	maxLines := (l.input.Dy() - 12) / lineH
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		drawLabel(dst, line, l.input.Min.X+8, l.input.Min.Y+18+i*lineH, colText)
	}

	counter, level := prompt.Counter(g.input.Len())
	drawLabel(dst, counter, l.input.Max.X-len(counter)*glyphW-4, l.input.Max.Y+16, level.Color())

	label := g.generate.label
	tint := colButton
	if g.Prompt.Busy() {
		label = "Generating " + formatElapsed(g.now().Sub(g.loadingSince))
		r, gg, b := hsvToRgb(g.hue, 0.6, 0.9)
		tint = colorful.Color{R: float64(r) / 255, G: float64(gg) / 255, B: float64(b) / 255}
	}
	drawButton(dst, &g.generate, label, tint)
}

func (g *Game) drawResult(dst *ebiten.Image) {
	r := g.lay.result
	fillRect(dst, r, withAlpha(colPanel, 180))
	strokeRect(dst, r, 1, withAlpha(colBorder, 90))

	if g.result.URL == "" {
		drawCentered(dst, "Your artwork will appear here", r, colMuted)
		return
	}

	if g.preview != nil {
		b := g.preview.Bounds()
		scale := math.Min(float64(r.Dx())/float64(b.Dx()), float64(r.Dy())/float64(b.Dy()))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(
			float64(r.Min.X)+(float64(r.Dx())-float64(b.Dx())*scale)/2,
			float64(r.Min.Y)+(float64(r.Dy())-float64(b.Dy())*scale)/2,
		)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(g.preview, op)
	} else {
		cols := (r.Dx() - 16) / glyphW
		for i, line := range wrapText(g.result.URL, cols) {
			drawLabel(dst, line, r.Min.X+8, r.Min.Y+24+i*lineH, colMuted)
		}
	}

	caption := wrapText(g.result.Prompt, (r.Dx()-16)/glyphW)
	if len(caption) > 0 {
		drawLabel(dst, caption[0], r.Min.X+8, r.Max.Y-8, colText)
	}

	drawButton(dst, &g.download, g.download.label, colButton)
	drawButton(dst, &g.regen, g.regen.label, colButton)
}

func (g *Game) drawToasts(dst *ebiten.Image) {
	active := g.Notes.Active()
	pulse := 0.0
	if g.Cues != nil {
		pulse = clamp01(g.Cues.Level() * 3)
	}

	for i, n := range active {
		r := toastRect(i, n.Offset, g.width)
		bg, _ := colorful.MakeColor(n.Severity.Color())

		fillRect(dst, r, withAlpha(bg, 235))

		border := float32(1)
		if i == len(active)-1 {
			border += float32(pulse * 4)
		}
		strokeRect(dst, r, border, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(120 + 135*pulse)})

		msg := truncate(n.Message, (r.Dx()-48)/glyphW)
		drawLabel(dst, msg, r.Min.X+12, r.Min.Y+r.Dy()/2+4, color.White)

		cr := closeRect(r)
		c := color.NRGBA{R: 255, G: 255, B: 255, A: 180}
		if g.cursor.In(cr) {
			c.A = 255
		}
		vector.StrokeLine(dst, float32(cr.Min.X+4), float32(cr.Min.Y+4), float32(cr.Max.X-4), float32(cr.Max.Y-4), 2, c, true)
		vector.StrokeLine(dst, float32(cr.Max.X-4), float32(cr.Min.Y+4), float32(cr.Min.X+4), float32(cr.Max.Y-4), 2, c, true)
	}
}
