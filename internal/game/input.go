package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// textInput is the prompt box contents, capped at limit runes.
type textInput struct {
	runes []rune
	limit int
}

func (t *textInput) Insert(rs ...rune) {
	for _, r := range rs {
		if len(t.runes) >= t.limit {
			return
		}
		if r == '\r' || r == '\t' {
			r = ' '
		}
		t.runes = append(t.runes, r)
	}
}

func (t *textInput) Backspace() {
	if len(t.runes) > 0 {
		t.runes = t.runes[:len(t.runes)-1]
	}
}

func (t *textInput) Value() string { return string(t.runes) }

func (t *textInput) Len() int { return len(t.runes) }

const (
	repeatDelay    = 30
	repeatInterval = 3
)

// repeatTick reports whether a key held for d ticks should fire this tick.
func repeatTick(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func repeatingKeyPressed(key ebiten.Key) bool {
	return repeatTick(inpututil.KeyPressDuration(key))
}

// button tracks hover and press state. A click is a press and release both
// inside the rectangle.
type button struct {
	rect     image.Rectangle
	label    string
	hovered  bool
	pressed  bool
	disabled bool
}

func (b *button) update(cursor image.Point, justPressed, justReleased bool) bool {
	b.hovered = cursor.In(b.rect)
	if b.disabled {
		b.pressed = false
		return false
	}
	if b.hovered && justPressed {
		b.pressed = true
	}
	clicked := false
	if justReleased {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}
