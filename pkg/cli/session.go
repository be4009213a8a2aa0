package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// ErrNoImage is returned by Session operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// Session is the editor state: the decoded original and the working image.
// Named filters are recomputed from the original; adjustments accumulate on
// the working image. Not safe for concurrent use.
type Session struct {
	cfg      Config
	original *stdimg.Buffer
	current  *stdimg.Buffer
	path     string
	format   string
}

// NewSession returns an empty session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// Open loads path, replacing both buffers.
func (s *Session) Open(path string) error {
	buf, format, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.Load(buf, path, format)
	return nil
}

// Load installs buf as the new original. buf is copied.
func (s *Session) Load(buf *stdimg.Buffer, path, format string) {
	s.original = buf.Clone()
	s.current = buf.Clone()
	s.path = path
	s.format = format
}

func (s *Session) Loaded() bool            { return s.original != nil }
func (s *Session) Path() string            { return s.path }
func (s *Session) Format() string          { return s.format }
func (s *Session) Current() *stdimg.Buffer { return s.current }

// Original returns the buffer as loaded.
func (s *Session) Original() *stdimg.Buffer { return s.original }

// Apply runs a registry command. Empty gaussianBlur args take the configured
// radius and sigma.
func (s *Session) Apply(name string, args []string) error {
	if !s.Loaded() {
		return ErrNoImage
	}
	if name == "gaussianBlur" {
		args = s.gaussianArgs(args)
	}
	out, err := stdimg.ApplyCommand(s.original, s.current, name, args)
	if err != nil {
		return err
	}
	s.current = out
	return nil
}

func (s *Session) gaussianArgs(args []string) []string {
	out := []string{
		strconv.Itoa(s.cfg.GaussianRadius),
		strconv.FormatFloat(s.cfg.GaussianSigma, 'f', -1, 64),
	}
	for i := 0; i < len(args) && i < len(out); i++ {
		if args[i] != "" {
			out[i] = args[i]
		}
	}
	return out
}

// ApplyFilter replaces the working image with filter id computed from the
// original. Unknown ids restore the original.
func (s *Session) ApplyFilter(id string) error {
	if !s.Loaded() {
		return ErrNoImage
	}
	out, err := stdimg.ApplyFilter(s.original, id)
	if err != nil {
		return err
	}
	s.current = out
	return nil
}

// Adjust applies a cumulative adjustment to the working image.
func (s *Session) Adjust(kind stdimg.AdjustKind, value float64) error {
	if !s.Loaded() {
		return ErrNoImage
	}
	return stdimg.ApplyAdjustment(s.current, kind, value)
}

// Reset discards every edit.
func (s *Session) Reset() error {
	if !s.Loaded() {
		return ErrNoImage
	}
	s.current = s.original.Clone()
	return nil
}

// PickColor returns the CSS rgba() string of the working image at x, y.
func (s *Session) PickColor(x, y int) (string, error) {
	if !s.Loaded() {
		return "", ErrNoImage
	}
	return s.current.CSS(x, y)
}

// Save writes the working image to path and returns the path written. A
// path without an extension is saved as PNG.
func (s *Session) Save(path string) (string, error) {
	if !s.Loaded() {
		return "", ErrNoImage
	}
	if path == "" {
		return "", fmt.Errorf("no filename provided")
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	if err := SaveImage(path, s.current, s.cfg.JPEGQuality); err != nil {
		return "", err
	}
	return path, nil
}

// Info describes the working image.
func (s *Session) Info() string {
	return ImageInfo(s.current, s.format)
}
