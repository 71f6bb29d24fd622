package game

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatElapsed formats a duration as MM:SS
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// wrapText breaks s into lines of at most cols runes, splitting on spaces
// where possible and keeping explicit newlines.
func wrapText(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := []rune{}
		for _, word := range strings.Split(para, " ") {
			w := []rune(word)
			for len(w) > cols {
				if len(line) > 0 {
					lines = append(lines, string(line))
					line = line[:0]
				}
				lines = append(lines, string(w[:cols]))
				w = w[cols:]
			}
			switch {
			case len(line) == 0:
				line = append(line, w...)
			case len(line)+1+len(w) <= cols:
				line = append(line, ' ')
				line = append(line, w...)
			default:
				lines = append(lines, string(line))
				line = append(line[:0], w...)
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	if limit <= 3 {
		return string(rs[:max(limit, 0)])
	}
	return string(rs[:limit-3]) + "..."
}
