package game

import (
	"image"

	"github.com/iburimskiy/neuroforge/internal/config"
)

// layout holds the widget rectangles for one window size.
type layout struct {
	input      image.Rectangle
	generate   image.Rectangle
	result     image.Rectangle
	download   image.Rectangle
	regenerate image.Rectangle
}

const (
	minResultWidth = 200
	gap            = 16
)

// layoutFor places the form on the left and the result panel to its right,
// or below it when the window is too narrow.
func layoutFor(w, h int) layout {
	var l layout

	top := config.FormY + 40
	l.input = image.Rect(config.FormX, top, config.FormX+config.FormWidth, top+config.InputHeight)
	l.generate = image.Rect(config.FormX, l.input.Max.Y+30,
		config.FormX+config.ButtonWidth, l.input.Max.Y+30+config.ButtonHeight)

	rx := l.input.Max.X + 40
	ry := top
	if w-rx-config.FormX < minResultWidth {
		rx = config.FormX
		ry = l.generate.Max.Y + 40
	}
	rw := max(w-rx-config.FormX, minResultWidth)
	l.result = image.Rect(rx, ry, rx+rw, ry+rw*2/3)

	l.download = image.Rect(rx, l.result.Max.Y+gap, rx+config.ButtonWidth, l.result.Max.Y+gap+config.ButtonHeight)
	l.regenerate = l.download.Add(image.Pt(config.ButtonWidth+gap, 0))
	return l
}

// toastRect is the i-th toast from the top, slid right by offset pixels.
func toastRect(i int, offset float64, screenW int) image.Rectangle {
	x := screenW - 20 - config.ToastWidth + int(offset)
	y := 20 + i*(config.ToastHeight+10)
	return image.Rect(x, y, x+config.ToastWidth, y+config.ToastHeight)
}

// closeRect is the dismiss button inside a toast.
func closeRect(toast image.Rectangle) image.Rectangle {
	return image.Rect(toast.Max.X-28, toast.Min.Y+10, toast.Max.X-8, toast.Max.Y-10)
}
