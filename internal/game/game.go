// Package game is the ebiten host: it feeds input to the particle field and
// the prompt form and draws everything into one window.
package game

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/neuroforge/internal/config"
	"github.com/iburimskiy/neuroforge/internal/log"
	"github.com/iburimskiy/neuroforge/internal/notify"
	"github.com/iburimskiy/neuroforge/internal/particle"
	"github.com/iburimskiy/neuroforge/internal/prompt"
)

const (
	msgGenerated      = "Artwork generated!"
	msgGenerateFailed = "Generation failed, please try again"
	msgDownloadStart  = "Download started"
	msgDownloadFailed = "Download failed"
)

// Cues is whatever reports the loudness of the notification cue playing.
type Cues interface {
	Level() float64
}

// Deps are the collaborators the game drives.
type Deps struct {
	Field     *particle.Field
	Prompt    *prompt.Controller
	Downloads *prompt.Downloader
	Notes     *notify.Center
	Cues      Cues
	Logger    *log.Logger
}

type Game struct {
	Deps

	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time

	width, height int
	initDone      bool
	lay           layout

	frame  particle.Frame
	cursor image.Point

	input    textInput
	typed    []rune
	generate button
	download button
	regen    button

	result       prompt.Result
	preview      *ebiten.Image
	loadingSince time.Time
	hue          float64
}

func New(d Deps) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	return &Game{
		Deps:     d,
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
		input:    textInput{limit: config.MaxPromptLength},
		generate: button{label: "Generate"},
		download: button{label: "Download"},
		regen:    button{label: "Regenerate"},
	}
}

// Close cancels any request still in flight.
func (g *Game) Close() { g.cancel() }

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.initDone {
		g.Field.Initialize(outsideWidth, outsideHeight)
		g.initDone = true
		g.Logger.Infof("[GAME] field initialized: %dx%d, %d particles",
			outsideWidth, outsideHeight, particle.Count(outsideWidth))
	} else if outsideWidth != g.width || outsideHeight != g.height {
		g.Field.OnResize(outsideWidth, outsideHeight)
		g.Logger.Debugf("[GAME] resized to %dx%d", outsideWidth, outsideHeight)
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.lay = layoutFor(outsideWidth, outsideHeight)
		g.generate.rect = g.lay.generate
		g.download.rect = g.lay.download
		g.regen.rect = g.lay.regenerate
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.cancel()
		return ebiten.Termination
	}
	if !g.initDone {
		return nil
	}
	now := g.now()

	mx, my := ebiten.CursorPosition()
	if cur := image.Pt(mx, my); cur != g.cursor {
		g.cursor = cur
		g.Field.OnPointerMove(float64(mx), float64(my))
	}

	g.handleTyping(now)
	g.handleClicks(now)
	g.pollResults(now)

	g.Notes.Update(now)
	g.hue += 2

	g.Field.Step(&g.frame)
	return nil
}

func (g *Game) handleTyping(now time.Time) {
	g.typed = ebiten.AppendInputChars(g.typed[:0])
	g.input.Insert(g.typed...)

	if repeatingKeyPressed(ebiten.KeyBackspace) {
		g.input.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
			g.submit(now)
		} else {
			g.input.Insert('\n')
		}
	}
}

func (g *Game) handleClicks(now time.Time) {
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	g.generate.disabled = g.Prompt.Busy()
	_, hasResult := g.Prompt.Last()
	g.download.disabled = !hasResult || g.Downloads.Busy()
	g.regen.disabled = !hasResult || g.Prompt.Busy()

	if g.generate.update(g.cursor, pressed, released) {
		g.submit(now)
	}
	if g.regen.update(g.cursor, pressed, released) {
		g.submit(now)
	}
	if g.download.update(g.cursor, pressed, released) {
		g.startDownload(now)
	}

	if released {
		for i, n := range g.Notes.Active() {
			if g.cursor.In(closeRect(toastRect(i, n.Offset, g.width))) {
				g.Notes.Dismiss(n.ID)
				break
			}
		}
	}
}

// messageFor maps prompt errors to the toast text.
func messageFor(err error) string {
	switch {
	case errors.Is(err, prompt.ErrEmptyPrompt):
		return "Please enter a description"
	case errors.Is(err, prompt.ErrPromptTooShort):
		return "Description is too short, please add detail"
	case errors.Is(err, prompt.ErrGenerationFailed):
		return msgGenerateFailed
	default:
		return err.Error()
	}
}

func (g *Game) submit(now time.Time) {
	err := g.Prompt.Submit(g.ctx, g.input.Value())
	switch {
	case err == nil:
		g.loadingSince = now
	case errors.Is(err, prompt.ErrBusy):
		g.Logger.Debugf("[GAME] submit ignored, request in flight")
	default:
		g.Notes.Push(messageFor(err), notify.Error, now)
	}
}

// startDownload hands the current result to the downloader. The save
// dialog runs off the game loop; progress arrives through pollResults.
func (g *Game) startDownload(now time.Time) {
	res, ok := g.Prompt.Last()
	if !ok {
		return
	}
	name := prompt.FileName(config.DownloadPrefix, now)
	if err := g.Downloads.Start(g.ctx, res.URL, name); err != nil {
		g.Logger.Debugf("[GAME] download ignored: %v", err)
	}
}

// wantsPreview reports whether pv belongs to the result on screen. Previews
// of an earlier generation or failed fetches are dropped.
func (g *Game) wantsPreview(pv prompt.Preview) bool {
	return pv.Err == nil && pv.Image != nil && pv.URL != "" && pv.URL == g.result.URL
}

func (g *Game) pollResults(now time.Time) {
	if res, ok := g.Prompt.Poll(); ok {
		if res.Err != nil {
			g.Notes.Push(messageFor(res.Err), notify.Error, now)
		} else {
			g.result = res
			g.preview = nil
			g.Notes.Push(msgGenerated, notify.Success, now)
		}
	}

	if pv, ok := g.Prompt.PollPreview(); ok && g.wantsPreview(pv) {
		g.preview = ebiten.NewImageFromImage(pv.Image)
	}

	if d, ok := g.Downloads.Poll(); ok {
		switch {
		case d.Canceled:
			// user backed out of the dialog
		case d.Err != nil:
			g.Notes.Push(msgDownloadFailed, notify.Error, now)
		case d.Saved:
			g.Notes.Push("Saved "+d.Path, notify.Info, now)
		default:
			g.Notes.Push(msgDownloadStart, notify.Success, now)
		}
	}
}
