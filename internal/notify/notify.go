// Package notify keeps the transient toast notifications shown in the top
// right corner of the window.
package notify

import (
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neuroforge/internal/config"
)

type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

var severityHex = map[Severity]string{
	Info:    "#45b7d1",
	Success: "#4ecdc4",
	Error:   "#ff6b6b",
}

// Color is the toast background for s.
func (s Severity) Color() color.Color {
	hex, ok := severityHex[s]
	if !ok {
		hex = severityHex[Info]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.White
	}
	return c
}

// Notification is one toast. Offset is the horizontal slide-in distance
// still to travel, in pixels; it settles at 0.
type Notification struct {
	ID       int
	Message  string
	Severity Severity
	Created  time.Time

	Offset   float64
	velocity float64
}

// Center holds the visible toasts. It is not safe for concurrent use.
type Center struct {
	ttl    time.Duration
	items  []Notification
	nextID int
	spring harmonica.Spring

	// OnPush, if set, is called for every pushed notification.
	OnPush func(Notification)
}

func NewCenter() *Center {
	return NewCenterTTL(config.NotificationTTL)
}

// NewCenterTTL returns a center whose toasts expire after ttl.
func NewCenterTTL(ttl time.Duration) *Center {
	return &Center{
		ttl:    ttl,
		nextID: 1,
		spring: harmonica.NewSpring(harmonica.FPS(60), 8.0, 0.8),
	}
}

// Push adds a toast and returns its id.
func (c *Center) Push(message string, sev Severity, now time.Time) int {
	n := Notification{
		ID:       c.nextID,
		Message:  message,
		Severity: sev,
		Created:  now,
		Offset:   config.ToastWidth,
	}
	c.nextID++
	c.items = append(c.items, n)
	if c.OnPush != nil {
		c.OnPush(n)
	}
	return n.ID
}

// Dismiss removes the toast with the given id. It reports whether the toast
// was still visible.
func (c *Center) Dismiss(id int) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update expires old toasts and advances the slide-in animation by one tick.
func (c *Center) Update(now time.Time) {
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Sub(n.Created) >= c.ttl {
			continue
		}
		n.Offset, n.velocity = c.spring.Update(n.Offset, n.velocity, 0)
		kept = append(kept, n)
	}
	c.items = kept
}

// Active returns the visible toasts, oldest first.
func (c *Center) Active() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) Len() int { return len(c.items) }
