package sound

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio file type")

// LoadCue decodes a wav, mp3 or flac file fully into memory, resampled to
// format's sample rate.
func LoadCue(path string, format beep.Format) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// Decode based on extension
	var (
		streamer beep.StreamSeekCloser
		src      beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, src, err = wav.Decode(f)
	case ".mp3":
		streamer, src, err = mp3.Decode(f)
	case ".flac":
		streamer, src, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.Join(ErrUnsupported, errors.New(ext))
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if src.SampleRate != format.SampleRate {
		s = beep.Resample(4, src.SampleRate, format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}
