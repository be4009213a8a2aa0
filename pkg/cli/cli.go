package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Commands available:")
	fmt.Fprintln(w, "  /  - select and apply a filter or adjustment")
	fmt.Fprintln(w, "  a  - adjust brightness, contrast or saturation")
	fmt.Fprintln(w, "  r  - reset to the original image")
	fmt.Fprintln(w, "  p  - pick the color at x,y")
	fmt.Fprintln(w, "  o  - open another image")
	fmt.Fprintln(w, "  s  - save current image (PNG unless another extension is given)")
	fmt.Fprintln(w, "  u  - check for updates")
	fmt.Fprintln(w, "  h  - show this help message")
	fmt.Fprintln(w, "  q  - quit")
}

// repl is the interactive editor loop over a Session.
type repl struct {
	cfg     Config
	session *Session
	store   *MetaStore
	prompt  *Prompter
	out     io.Writer
	errOut  io.Writer
	// selectCommand and preview are swapped out in tests.
	selectCommand func([]stdimg.CommandSpec) (string, error)
	preview       func(*stdimg.Buffer, string, int) error
	checkUpdates  func(*Prompter, string) error
}

func newREPL(cfg Config, in io.Reader, out, errOut io.Writer) *repl {
	return &repl{
		cfg:           cfg,
		session:       NewSession(cfg),
		store:         NewMetaStore(stdimg.Commands),
		prompt:        NewPrompter(in, out),
		out:           out,
		errOut:        errOut,
		selectCommand: SelectCommandWithFzf,
		preview:       PreviewBuffer,
		checkUpdates:  CheckForUpdates,
	}
}

// RunCLI starts the interactive editor on stdin/stdout, opening imagePath
// first when it is not empty.
func RunCLI(cfg Config, imagePath string) error {
	r := newREPL(cfg, os.Stdin, os.Stdout, os.Stderr)
	if imagePath != "" {
		if err := r.session.Open(imagePath); err != nil {
			return fmt.Errorf("failed to read image %s: %w", imagePath, err)
		}
		r.show()
	}
	fmt.Fprintln(r.out, "Terminal Image Filters")
	usage(r.out)
	return r.loop()
}

// show previews the working image (best effort) and prints its summary.
func (r *repl) show() {
	_ = r.preview(r.session.Current(), r.session.Format(), r.cfg.PreviewMaxWidth)
	fmt.Fprintln(r.out, r.session.Info())
}

func (r *repl) errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, format+"\n", args...)
}

func (r *repl) loop() error {
	for {
		key, err := r.prompt.ReadKey("> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "Exiting...")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if key == 'q' {
			fmt.Fprintln(r.out, "Exiting...")
			return nil
		}
		r.handle(key)
	}
}

func (r *repl) handle(key rune) {
	switch key {
	case '/':
		r.applyCommand()
	case 'a':
		r.adjust()
	case 'r':
		if err := r.session.Reset(); err != nil {
			r.errorf("reset: %v", err)
			return
		}
		fmt.Fprintln(r.out, "Restored original")
		r.show()
	case 'p':
		r.pickColor()
	case 'o':
		r.open()
	case 's':
		r.save()
	case 'u':
		if err := r.checkUpdates(r.prompt, r.cfg.UpdateRepo); err != nil {
			r.errorf("update check error: %v", err)
		}
	case 'h':
		usage(r.out)
	}
}

// chooseCommand asks fzf first and falls back to a numbered list.
func (r *repl) chooseCommand() (string, bool) {
	if name, err := r.selectCommand(r.store.Commands); err == nil && name != "" {
		return name, true
	}
	fmt.Fprintln(r.out, "Command selection (fallback):")
	for i, c := range r.store.Commands {
		fmt.Fprintf(r.out, "  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	selection, _ := r.prompt.Line("Enter number or command name (leave empty to cancel): ")
	if selection == "" {
		fmt.Fprintln(r.out, "selection cancelled")
		return "", false
	}
	name, err := r.store.Resolve(selection)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return "", false
	}
	return name, true
}

func (r *repl) applyCommand() {
	if !r.session.Loaded() {
		fmt.Fprintln(r.out, "No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
		return
	}
	name, ok := r.chooseCommand()
	if !ok {
		return
	}
	c, ok := r.store.Lookup(name)
	if !ok {
		fmt.Fprintf(r.out, "unknown command: %s\n", name)
		return
	}
	tooltip, _, _ := r.store.GetCommandHelp(name)
	fmt.Fprintln(r.out, "\n"+tooltip+"\n")

	raw := make([]string, len(c.Args))
	for i, a := range c.Args {
		v, err := r.prompt.Line(fmt.Sprintf("%s (%s): ", a.Name, a.Type))
		if err != nil {
			r.errorf("input error: %v", err)
		}
		raw[i] = v
	}
	args, err := NormalizeArgs(r.store, name, raw)
	if err != nil {
		r.errorf("input validation error: %v", err)
		fmt.Fprintln(r.out, "aborting command due to input errors")
		return
	}
	if err := r.session.Apply(name, args); err != nil {
		r.errorf("apply command error: %v", err)
		return
	}
	fmt.Fprintf(r.out, "Applied %s\n", name)
	r.show()
}

var adjustKinds = map[string]stdimg.AdjustKind{
	"b": stdimg.AdjustBrightness, "brightness": stdimg.AdjustBrightness,
	"c": stdimg.AdjustContrast, "contrast": stdimg.AdjustContrast,
	"s": stdimg.AdjustSaturation, "saturation": stdimg.AdjustSaturation,
}

func (r *repl) adjust() {
	if !r.session.Loaded() {
		fmt.Fprintln(r.out, "No image loaded.")
		return
	}
	which, _ := r.prompt.Line("Adjust (b)rightness, (c)ontrast or (s)aturation: ")
	kind, ok := adjustKinds[strings.ToLower(which)]
	if !ok {
		fmt.Fprintf(r.out, "unknown adjustment: %q\n", which)
		return
	}
	raw, _ := r.prompt.Line(kind.String() + " value: ")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errorf("invalid %s value: %v", kind, err)
		return
	}
	if err := r.session.Adjust(kind, v); err != nil {
		r.errorf("adjust error: %v", err)
		return
	}
	fmt.Fprintf(r.out, "Adjusted %s by %v\n", kind, v)
	r.show()
}

func (r *repl) pickColor() {
	if !r.session.Loaded() {
		fmt.Fprintln(r.out, "No image loaded.")
		return
	}
	raw, _ := r.prompt.Line("x,y: ")
	xs, ys, found := strings.Cut(raw, ",")
	if !found {
		xs, ys, found = strings.Cut(strings.TrimSpace(raw), " ")
	}
	x, xerr := strconv.Atoi(strings.TrimSpace(xs))
	y, yerr := strconv.Atoi(strings.TrimSpace(ys))
	if !found || xerr != nil || yerr != nil {
		r.errorf("expected two integers, got %q", raw)
		return
	}
	css, err := r.session.PickColor(x, y)
	if err != nil {
		r.errorf("pick color: %v", err)
		return
	}
	fmt.Fprintln(r.out, css)
}

func (r *repl) open() {
	path, _ := r.prompt.Path("Image to open (leave empty to cancel)")
	if path == "" {
		fmt.Fprintln(r.out, "open cancelled")
		return
	}
	if err := r.session.Open(path); err != nil {
		r.errorf("failed to read image %s: %v", path, err)
		return
	}
	fmt.Fprintf(r.out, "Opened %s\n", path)
	r.show()
}

func (r *repl) save() {
	if !r.session.Loaded() {
		fmt.Fprintln(r.out, "No image loaded.")
		return
	}
	out, _ := r.prompt.Line("Enter output filename: ")
	if out == "" {
		fmt.Fprintln(r.out, "no filename provided")
		return
	}
	written, err := r.session.Save(out)
	if err != nil {
		r.errorf("failed to write image: %v", err)
		return
	}
	fmt.Fprintf(r.out, "Saved to %s\n", written)
}
