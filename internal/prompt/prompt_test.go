package prompt

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/neuroforge/internal/log"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{"", "", ErrEmptyPrompt},
		{"   \t\n", "", ErrEmptyPrompt},
		{"abcd", "", ErrPromptTooShort},
		{"  abcd  ", "", ErrPromptTooShort},
		{"abcde", "abcde", nil},
		{"  a neon city at dusk ", "a neon city at dusk", nil},
		{"赛博朋克城", "赛博朋克城", nil},
		{"赛博朋克", "", ErrPromptTooShort},
	}
	for _, tt := range tests {
		got, err := Validate(tt.raw)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Validate(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Validate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCounter(t *testing.T) {
	tests := []struct {
		n         int
		wantText  string
		wantLevel CounterLevel
	}{
		{0, "0/200", CounterNormal},
		{150, "150/200", CounterNormal},
		{151, "151/200", CounterWarning},
		{180, "180/200", CounterWarning},
		{181, "181/200", CounterDanger},
		{200, "200/200", CounterDanger},
	}
	for _, tt := range tests {
		text, level := Counter(tt.n)
		if text != tt.wantText || level != tt.wantLevel {
			t.Errorf("Counter(%d) = %q, %d; want %q, %d", tt.n, text, level, tt.wantText, tt.wantLevel)
		}
		if level.Color() == nil {
			t.Errorf("Counter(%d) has no color", tt.n)
		}
	}
}

func TestStubGeneratorReturnsPlaceholder(t *testing.T) {
	g := NewStubGenerator(5*time.Millisecond, rand.New(rand.NewSource(7)))

	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		url, err := g.Generate(context.Background(), "abcde")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		seen[url] = true
	}
	for url := range seen {
		found := false
		for _, p := range PlaceholderImages {
			if url == p {
				found = true
			}
		}
		if !found {
			t.Errorf("Unexpected URL %q", url)
		}
	}
	if len(seen) < 2 {
		t.Errorf("Expected several placeholders over 30 draws, got %d", len(seen))
	}
}

func TestStubGeneratorWaitsForDelay(t *testing.T) {
	g := NewStubGenerator(50*time.Millisecond, rand.New(rand.NewSource(1)))
	start := time.Now()
	if _, err := g.Generate(context.Background(), "abcde"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Returned after %v, before the delay", elapsed)
	}
}

func TestStubGeneratorCancel(t *testing.T) {
	g := NewStubGenerator(time.Hour, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx, "abcde"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// gatedGenerator blocks until release is closed.
type gatedGenerator struct {
	release chan struct{}
	url     string
	err     error
	calls   int
}

func (g *gatedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	<-g.release
	return g.url, g.err
}

type fakeFetcher struct {
	data []byte
	err  error
}

func (f fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.data, f.err
}

func pollResult(t *testing.T, c *Controller) Result {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := c.Poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for result")
	return Result{}
}

func TestSubmitRejectsInvalidWithoutGenerating(t *testing.T) {
	gen := &gatedGenerator{release: make(chan struct{})}
	c := NewController(gen, nil, log.Discard())

	if err := c.Submit(context.Background(), ""); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Expected ErrEmptyPrompt, got %v", err)
	}
	if err := c.Submit(context.Background(), "abcd"); !errors.Is(err, ErrPromptTooShort) {
		t.Errorf("Expected ErrPromptTooShort, got %v", err)
	}
	if c.Busy() {
		t.Error("Invalid prompts must not mark the controller busy")
	}
	time.Sleep(5 * time.Millisecond)
	if gen.calls != 0 {
		t.Errorf("Generator invoked %d times for invalid prompts", gen.calls)
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	gen := &gatedGenerator{release: make(chan struct{}), url: "https://example.com/a.jpg"}
	c := NewController(gen, nil, log.Discard())

	if err := c.Submit(context.Background(), "abcde"); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}
	if !c.Busy() {
		t.Fatal("Expected busy after submit")
	}
	if err := c.Submit(context.Background(), "another prompt"); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	if _, ok := c.Poll(); ok {
		t.Error("Poll returned a result before the generator finished")
	}

	close(gen.release)
	res := pollResult(t, c)
	if res.Err != nil || res.URL != gen.url || res.Prompt != "abcde" {
		t.Errorf("Unexpected result %+v", res)
	}
	if c.Busy() {
		t.Error("Expected idle after poll")
	}
	if last, ok := c.Last(); !ok || last.URL != gen.url {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	if err := c.Submit(context.Background(), "abcde again"); err != nil {
		t.Errorf("Submit after completion failed: %v", err)
	}
}

func TestGenerationFailure(t *testing.T) {
	gen := &gatedGenerator{release: make(chan struct{}), err: errors.New("model offline")}
	close(gen.release)
	c := NewController(gen, nil, log.Discard())

	if err := c.Submit(context.Background(), "abcde"); err != nil {
		t.Fatal(err)
	}
	res := pollResult(t, c)
	if !errors.Is(res.Err, ErrGenerationFailed) {
		t.Errorf("Expected ErrGenerationFailed, got %v", res.Err)
	}
	if !strings.Contains(res.Err.Error(), "model offline") {
		t.Errorf("Cause lost: %v", res.Err)
	}
	if _, ok := c.Last(); ok {
		t.Error("Failed generation must not replace Last")
	}
}

func pollPreview(t *testing.T, c *Controller) Preview {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pv, ok := c.PollPreview(); ok {
			return pv
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for preview")
	return Preview{}
}

func TestPreview(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	gen := &gatedGenerator{release: make(chan struct{}), url: "https://example.com/a.png"}
	close(gen.release)

	c := NewController(gen, fakeFetcher{data: buf.Bytes()}, log.Discard())
	if err := c.Submit(context.Background(), "abcde"); err != nil {
		t.Fatal(err)
	}
	pollResult(t, c)
	pv := pollPreview(t, c)
	if pv.Image == nil || pv.Err != nil || pv.URL != gen.url {
		t.Errorf("Expected decoded preview for %s, got %+v", gen.url, pv)
	}

	c = NewController(gen, fakeFetcher{err: errors.New("offline")}, log.Discard())
	if err := c.Submit(context.Background(), "abcde"); err != nil {
		t.Fatal(err)
	}
	res := pollResult(t, c)
	if res.Err != nil || res.URL == "" {
		t.Errorf("Preview failure must not fail generation: %+v", res)
	}
	if pv := pollPreview(t, c); pv.Err == nil {
		t.Error("Expected preview error")
	}
}

// slowFetcher blocks until release is closed.
type slowFetcher struct {
	release chan struct{}
}

func (f slowFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	select {
	case <-f.release:
		return nil, errors.New("gone")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestSlowPreviewDoesNotDelayResult(t *testing.T) {
	gen := &gatedGenerator{release: make(chan struct{}), url: "https://example.com/a.jpg"}
	close(gen.release)
	fetch := slowFetcher{release: make(chan struct{})}
	defer close(fetch.release)

	c := NewController(gen, fetch, log.Discard())
	if err := c.Submit(context.Background(), "abcde"); err != nil {
		t.Fatal(err)
	}

	res := pollResult(t, c)
	if res.URL != gen.url {
		t.Errorf("Unexpected result %+v", res)
	}
	if c.Busy() {
		t.Error("Expected idle while the preview is still loading")
	}
	if _, ok := c.PollPreview(); ok {
		t.Error("Preview reported before the fetch finished")
	}
	if err := c.Submit(context.Background(), "abcde again"); err != nil {
		t.Errorf("Regenerate blocked by a pending preview: %v", err)
	}
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := FileName("neuroforge", now); got != "neuroforge-1700000000123.jpg" {
		t.Errorf("FileName = %q", got)
	}
}

type fakePicker struct {
	path string
	err  error
}

func (p fakePicker) PickSavePath(name string) (string, error) { return p.path, p.err }

// blockingPicker holds the dialog open until release is closed.
type blockingPicker struct {
	release chan struct{}
}

func (p blockingPicker) PickSavePath(name string) (string, error) {
	<-p.release
	return "", ErrCanceled
}

// pollDownload collects download results until one ends the download.
func pollDownload(t *testing.T, d *Downloader) []DownloadResult {
	t.Helper()
	var got []DownloadResult
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := d.Poll(); ok {
			got = append(got, res)
			if res.Done() {
				return got
			}
			continue
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for download")
	return nil
}

func TestDownloader(t *testing.T) {
	dest := filepath.Join(t.TempDir(), FileName("neuroforge", time.Now()))

	d := NewDownloader(fakeFetcher{data: []byte("jpegdata")}, fakePicker{path: dest}, log.Discard())
	if err := d.Start(context.Background(), "https://example.com/a.jpg", "a.jpg"); err != nil {
		t.Fatal(err)
	}

	got := pollDownload(t, d)
	if len(got) != 2 {
		t.Fatalf("Expected started and saved results, got %+v", got)
	}
	if got[0].Path != dest || got[0].Saved || got[0].Done() {
		t.Errorf("Unexpected start result %+v", got[0])
	}
	if !got[1].Saved || got[1].Err != nil {
		t.Fatalf("Download failed: %+v", got[1])
	}
	if d.Busy() {
		t.Error("Expected idle after the download finished")
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "jpegdata" {
		t.Errorf("Unexpected file content %q, %v", data, err)
	}
}

func TestDownloaderFetchError(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "x.jpg")
	d := NewDownloader(fakeFetcher{err: errors.New("404")}, fakePicker{path: dest}, log.Discard())
	if err := d.Start(context.Background(), "https://example.com/missing.jpg", "x.jpg"); err != nil {
		t.Fatal(err)
	}

	got := pollDownload(t, d)
	if last := got[len(got)-1]; last.Err == nil || last.Saved {
		t.Errorf("Expected error, got %+v", last)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("No file should be written on fetch error")
	}
}

func TestDownloaderDialogDoesNotBlockCaller(t *testing.T) {
	picker := blockingPicker{release: make(chan struct{})}
	d := NewDownloader(fakeFetcher{}, picker, log.Discard())

	start := time.Now()
	if err := d.Start(context.Background(), "https://example.com/a.jpg", "a.jpg"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Start waited %v for the dialog", elapsed)
	}
	if !d.Busy() {
		t.Error("Expected busy while the dialog is open")
	}
	if err := d.Start(context.Background(), "https://example.com/a.jpg", "a.jpg"); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for a second download, got %v", err)
	}

	close(picker.release)
	got := pollDownload(t, d)
	if len(got) != 1 || !got[0].Canceled || got[0].Err != nil {
		t.Errorf("Expected a single canceled result, got %+v", got)
	}
	if d.Busy() {
		t.Error("Expected idle after cancel")
	}
}
