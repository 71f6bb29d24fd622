// Package prompt handles the art prompt form: validation, the character
// counter, the (simulated) generation request and downloading the result.
package prompt

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neuroforge/internal/config"
)

var (
	ErrEmptyPrompt      = errors.New("please enter a description")
	ErrPromptTooShort   = errors.New("description is too short, please add detail")
	ErrBusy             = errors.New("a request is already in progress")
	ErrGenerationFailed = errors.New("generation failed, please try again")
)

// Validate trims raw and checks it is long enough to submit. It returns the
// trimmed prompt.
func Validate(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", ErrEmptyPrompt
	}
	if utf8.RuneCountInString(p) < config.MinPromptLength {
		return "", ErrPromptTooShort
	}
	return p, nil
}

type CounterLevel int

const (
	CounterNormal CounterLevel = iota
	CounterWarning
	CounterDanger
)

var counterHex = [...]string{
	CounterNormal:  "#b0b0b0",
	CounterWarning: "#ffd93d",
	CounterDanger:  "#ff6b6b",
}

func (l CounterLevel) Color() color.Color {
	c, err := colorful.Hex(counterHex[l])
	if err != nil {
		return color.White
	}
	return c
}

// Counter renders the "n/200" label for an input of n characters and how
// close it is to the limit.
func Counter(n int) (string, CounterLevel) {
	level := CounterNormal
	switch {
	case n > config.CounterDanger:
		level = CounterDanger
	case n > config.CounterWarning:
		level = CounterWarning
	}
	return fmt.Sprintf("%d/%d", n, config.MaxPromptLength), level
}
