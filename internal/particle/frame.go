package particle

import "image/color"

// Canvas is the drawing surface a Field renders onto.
type Canvas interface {
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

type opKind uint8

const (
	opClear opKind = iota
	opCircle
	opLine
)

type op struct {
	kind           opKind
	x0, y0, x1, y1 float64
	size           float64
	c              color.Color
}

// Frame is a Canvas that records draw calls so they can be replayed later.
// The game steps the field in Update and replays the frame in Draw.
type Frame struct {
	ops []op
}

// Clear drops everything recorded so far and records a clear.
func (f *Frame) Clear() {
	f.ops = f.ops[:0]
	f.ops = append(f.ops, op{kind: opClear})
}

func (f *Frame) FillCircle(x, y, r float64, c color.Color) {
	f.ops = append(f.ops, op{kind: opCircle, x0: x, y0: y, size: r, c: c})
}

func (f *Frame) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	f.ops = append(f.ops, op{kind: opLine, x0: x0, y0: y0, x1: x1, y1: y1, size: width, c: c})
}

// Len reports the number of recorded operations.
func (f *Frame) Len() int { return len(f.ops) }

// Replay issues the recorded operations to dst in order.
func (f *Frame) Replay(dst Canvas) {
	for _, o := range f.ops {
		switch o.kind {
		case opClear:
			dst.Clear()
		case opCircle:
			dst.FillCircle(o.x0, o.y0, o.size, o.c)
		case opLine:
			dst.StrokeLine(o.x0, o.y0, o.x1, o.y1, o.size, o.c)
		}
	}
}
