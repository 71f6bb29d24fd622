package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// screenCanvas draws particle frames onto an ebiten image.
type screenCanvas struct {
	dst *ebiten.Image
	bg  color.Color
}

func (s screenCanvas) Clear() { s.dst.Fill(s.bg) }

func (s screenCanvas) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

func (s screenCanvas) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
