package prompt

import (
	"context"
	"fmt"
	"image"

	"github.com/iburimskiy/neuroforge/internal/log"
	"github.com/iburimskiy/neuroforge/internal/remote"
)

// Fetcher downloads the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result is a finished generation request.
type Result struct {
	Prompt string
	URL    string
	Err    error
}

// Preview is the decoded image behind a generated URL. It arrives after the
// Result it belongs to, or not at all when there is no fetcher.
type Preview struct {
	URL   string
	Image image.Image
	Err   error
}

// Controller runs at most one generation at a time. Submit, Poll,
// PollPreview and Busy are meant to be called from the game loop only; the
// request and the preview fetch run on their own goroutines and report back
// through channels.
type Controller struct {
	gen    Generator
	fetch  Fetcher
	logger *log.Logger

	busy     bool
	last     Result
	results  chan Result
	previews chan Preview
}

// NewController returns a controller. fetch may be nil to skip previews.
func NewController(gen Generator, fetch Fetcher, logger *log.Logger) *Controller {
	return &Controller{
		gen:      gen,
		fetch:    fetch,
		logger:   logger,
		results:  make(chan Result, 1),
		previews: make(chan Preview, 4),
	}
}

// Submit validates raw and starts a generation. It returns a validation
// error or ErrBusy without starting anything.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	p, err := Validate(raw)
	if err != nil {
		return err
	}
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	c.logger.Infof("[PROMPT] generating for %q", p)
	go c.run(ctx, p)
	return nil
}

func (c *Controller) run(ctx context.Context, p string) {
	url, err := c.gen.Generate(ctx, p)
	if err != nil {
		c.results <- Result{Prompt: p, Err: fmt.Errorf("%w: %w", ErrGenerationFailed, err)}
		return
	}
	c.results <- Result{Prompt: p, URL: url}

	if c.fetch == nil {
		return
	}
	pv := Preview{URL: url}
	pv.Image, pv.Err = c.preview(ctx, url)
	select {
	case c.previews <- pv:
	case <-ctx.Done():
	}
}

func (c *Controller) preview(ctx context.Context, url string) (image.Image, error) {
	data, err := c.fetch.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return remote.DecodeImage(data)
}

// Poll returns the finished request, if any, and clears the busy state.
func (c *Controller) Poll() (Result, bool) {
	select {
	case res := <-c.results:
		c.busy = false
		if res.Err != nil {
			c.logger.Errorf("[PROMPT] %v", res.Err)
		} else {
			c.last = res
			c.logger.Infof("[PROMPT] generated %s", res.URL)
		}
		return res, true
	default:
		return Result{}, false
	}
}

// PollPreview returns a fetched preview, if one is ready. A failed fetch is
// logged and reported with Err set; the generation it belongs to stands.
func (c *Controller) PollPreview() (Preview, bool) {
	select {
	case pv := <-c.previews:
		if pv.Err != nil {
			c.logger.Warnf("[PROMPT] preview unavailable: %v", pv.Err)
		}
		return pv, true
	default:
		return Preview{}, false
	}
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool { return c.busy }

// Last returns the most recent successful result.
func (c *Controller) Last() (Result, bool) {
	return c.last, c.last.URL != ""
}
