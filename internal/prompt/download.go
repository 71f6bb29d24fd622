package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/neuroforge/internal/log"
)

var ErrCanceled = errors.New("save canceled")

// FileName is the suggested name for a downloaded artwork.
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d.jpg", prefix, now.UnixMilli())
}

// PathPicker asks the user where to save a file. It returns ErrCanceled if
// the user backs out.
type PathPicker interface {
	PickSavePath(name string) (string, error)
}

// DialogPicker shows the native save dialog.
type DialogPicker struct{}

func (DialogPicker) PickSavePath(name string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Artwork"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "JPEG image",
			Patterns: []string{"*.jpg", "*.jpeg"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrCanceled
		}
		return "", err
	}
	return path, nil
}

// DownloadResult reports progress of a download. A download sends one
// result once the destination is chosen and another when the file is
// written; a canceled dialog or a failure ends it early.
type DownloadResult struct {
	URL      string
	Path     string
	Saved    bool
	Canceled bool
	Err      error
}

// Done reports whether r is the last result of its download.
func (r DownloadResult) Done() bool { return r.Saved || r.Canceled || r.Err != nil }

// Downloader asks for a destination and saves remote images there in the
// background, one download at a time. Start, Poll and Busy are called from
// the game loop; the dialog and the transfer run on their own goroutine.
type Downloader struct {
	fetch  Fetcher
	picker PathPicker
	logger *log.Logger

	busy bool
	done chan DownloadResult
}

func NewDownloader(fetch Fetcher, picker PathPicker, logger *log.Logger) *Downloader {
	return &Downloader{
		fetch:  fetch,
		picker: picker,
		logger: logger,
		done:   make(chan DownloadResult, 2),
	}
}

// Start opens the save dialog pre-filled with name and then downloads url
// to the chosen path. It returns ErrBusy while another download is pending.
func (d *Downloader) Start(ctx context.Context, url, name string) error {
	if d.busy {
		return ErrBusy
	}
	d.busy = true
	go func() {
		path, err := d.picker.PickSavePath(name)
		if err != nil {
			res := DownloadResult{URL: url}
			if errors.Is(err, ErrCanceled) {
				res.Canceled = true
			} else {
				res.Err = err
			}
			d.done <- res
			return
		}
		d.done <- DownloadResult{URL: url, Path: path}

		data, err := d.fetch.Fetch(ctx, url)
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		d.done <- DownloadResult{URL: url, Path: path, Saved: err == nil, Err: err}
	}()
	return nil
}

func (d *Downloader) Poll() (DownloadResult, bool) {
	select {
	case res := <-d.done:
		if res.Done() {
			d.busy = false
		}
		switch {
		case res.Err != nil:
			d.logger.Errorf("[DOWNLOAD] %s: %v", res.URL, res.Err)
		case res.Canceled:
			d.logger.Debugf("[DOWNLOAD] save canceled")
		case res.Saved:
			d.logger.Infof("[DOWNLOAD] saved %s", res.Path)
		default:
			d.logger.Infof("[DOWNLOAD] %s -> %s", res.URL, res.Path)
		}
		return res, true
	default:
		return DownloadResult{}, false
	}
}

// Busy reports whether a download is pending.
func (d *Downloader) Busy() bool { return d.busy }
