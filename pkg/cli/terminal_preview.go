package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/nfnt/resize"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// Terminal preview for the working image.
//
// Backends, in detection order:
//   - inline: iTerm2-style OSC 1337 (iTerm2, WezTerm, Warp, Tabby, VSCode, ...)
//   - kitty: kitty graphics protocol, chunked base64 inside ESC _G ... ESC \
//   - sixel: PNG piped to img2sixel
//   - chafa: block-symbol rendering for everything else
//
// PREVIEW_BACKEND forces a backend first; the usual order still follows on
// failure.

var previewDebug bool

// SetPreviewDebug toggles diagnostics on stderr (PREVIEW_DEBUG=1).
func SetPreviewDebug(on bool) { previewDebug = on }

func debugf(format string, args ...any) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "picfx-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghost")
}

var inlinePrograms = map[string]bool{
	"iTerm.app": true, "WezTerm": true, "Warp": true, "Hyper": true,
	"vscode": true, "VSCode": true, "Tabby": true, "Bobcat": true,
}

func isInlineImageCapable() bool {
	if inlinePrograms[os.Getenv("TERM_PROGRAM")] || os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, s := range []string{"wez", "warp", "tabby", "vscode"} {
		if strings.Contains(term, s) {
			return true
		}
	}
	return false
}

// isSixelCapable is a heuristic; SIXEL_PREVIEW=1 forces it.
func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "foot") || strings.Contains(term, "st") || strings.Contains(term, "linux")
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	if os.Getenv("CHAFAPREVIEW") == "1" {
		return true
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any backend is likely to work.
func PreviewSupported() bool {
	return isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int
	PixelHeight int
}

const (
	cellW   = 8
	cellH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

// computePreviewSize fits w x h into at most maxCols x maxRows cells,
// preserving aspect ratio and never scaling up.
func computePreviewSize(w, h int) PreviewSize {
	if w <= 0 || h <= 0 {
		return PreviewSize{Cols: minCols, Rows: minRows, PixelWidth: minCols * cellW, PixelHeight: minRows * cellH}
	}
	scale := math.Min(1, math.Min(float64(maxCols*cellW)/float64(w), float64(maxRows*cellH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / cellW))
	rows := int(math.Round(float64(h) * scale / cellH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * cellW, PixelHeight: rows * cellH}
}

// postImageNewlines returns how many blank lines to print below an image of
// the given row count so the prompt lands underneath it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	}
	return 4
}

// downscale shrinks img to at most maxWidth pixels wide. maxWidth <= 0
// disables it.
func downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	debugf("downscaling %dx%d to width %d", b.Dx(), b.Dy(), maxWidth)
	return resize.Thumbnail(uint(maxWidth), uint(b.Dy()), img, resize.Lanczos3)
}

// PreviewBuffer previews buf on stdout, downscaled to maxWidth pixels.
func PreviewBuffer(buf *stdimg.Buffer, format string, maxWidth int) error {
	if buf == nil {
		return fmt.Errorf("nil image")
	}
	return PreviewImage(downscale(buf.NRGBA(), maxWidth), format)
}

// PreviewImage encodes img (PNG, or JPEG when format is "jpeg"/"jpg") and
// sends it to stdout with the first backend that works.
func PreviewImage(img image.Image, format string) error {
	return previewTo(os.Stdout, img, format)
}

func previewTo(w io.Writer, img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	f := strings.ToLower(format)
	backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	if backend == "kitty" || (backend == "" && isKitty()) {
		f = "png"
	}
	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
		f = "jpeg"
	} else {
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	b := img.Bounds()
	return previewBytes(w, buf.Bytes(), f, computePreviewSize(b.Dx(), b.Dy()))
}

type previewBackend struct {
	name   string
	detect func() bool
	send   func(w io.Writer, data []byte, format string, size PreviewSize) error
}

var previewBackends = []previewBackend{
	{"inline", isInlineImageCapable, sendInlineImage},
	{"kitty", isKitty, sendKittyImage},
	{"sixel", isSixelCapable, sendSixelImage},
	{"chafa", hasChafa, sendChafaImage},
}

var backendAliases = map[string]string{"iterm": "inline", "wezterm": "inline"}

// previewBytes tries the PREVIEW_BACKEND override, then each detected
// backend in order. The first backend's error is reported if all fail.
func previewBytes(w io.Writer, blob []byte, format string, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}
	forced := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	if alias, ok := backendAliases[forced]; ok {
		forced = alias
	}
	if forced != "" {
		for _, b := range previewBackends {
			if b.name != forced {
				continue
			}
			if err := b.send(w, blob, format, size); err == nil {
				return nil
			} else {
				debugf("override %s failed: %v", forced, err)
			}
		}
	}
	var firstErr error
	for _, b := range previewBackends {
		if b.name == forced || !b.detect() {
			continue
		}
		debugf("attempting %s backend", b.name)
		err := b.send(w, blob, format, size)
		if err == nil {
			return nil
		}
		debugf("%s backend failed: %v", b.name, err)
		if firstErr == nil {
			firstErr = fmt.Errorf("%s preview failed: %w", b.name, err)
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return fmt.Errorf("no preview protocol matched")
}

func newlines(w io.Writer, n int) {
	io.WriteString(w, strings.Repeat("\n", n))
}

// sendKittyImage transmits data with the kitty graphics protocol in base64
// chunks of at most 4096 bytes. The first chunk carries the placement
// (c=cols, r=rows); q=2 suppresses terminal responses.
func sendKittyImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	const chunkSize = 4096
	enc := base64.StdEncoding.EncodeToString(data)
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}

func inlineSequence(data []byte, format string, size PreviewSize) string {
	name := "preview.png"
	if strings.HasPrefix(format, "j") {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	return "\x1b]1337;File=name=" + name + ";inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
}

// sendInlineImage emits the iTerm2-style OSC 1337 inline file sequence.
func sendInlineImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if _, err := io.WriteString(w, inlineSequence(data, format, size)); err != nil {
		return err
	}
	newlines(w, postImageNewlines(0))
	return nil
}

// sendSixelImage pipes data through img2sixel, falling back to chafa.
func sendSixelImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		debugf("img2sixel failed: %v", err)
		return sendChafaImage(w, data, format, size)
	}
	newlines(w, postImageNewlines(0))
	return nil
}

// sendChafaImage renders data with chafa at the computed cell size.
// CHAFA_FILL and CHAFA_SYMBOLS override the block defaults.
func sendChafaImage(w io.Writer, data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if os.Getenv("NO_CHAFA") == "1" {
		return fmt.Errorf("chafa usage disabled via NO_CHAFA=1")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}
	fill, symbols := "block", "block"
	if v := os.Getenv("CHAFA_FILL"); v != "" {
		fill = v
	}
	if v := os.Getenv("CHAFA_SYMBOLS"); v != "" {
		symbols = v
	}
	debugf("chafa %d bytes (%s) at %dx%d", len(data), format, size.Cols, size.Rows)
	cmd := exec.Command("chafa", "--fill="+fill, "--symbols="+symbols, "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}
