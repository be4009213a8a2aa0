package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads user input line by line. The REPL and every prompt share
// one Prompter so no buffered input is lost between reads.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// selectFile is invoked when a path prompt receives "/".
	selectFile func(dir string) (string, error)
}

// NewPrompter reads from r and writes prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, selectFile: SelectFileWithFzf}
}

// ReadKey reads the next non-whitespace rune and discards the rest of the
// line.
func (p *Prompter) ReadKey(prompt string) (rune, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}
	return []rune(line)[0], nil
}

// Line displays a prompt and reads a full line of input, trimmed of
// surrounding whitespace. A final line without a newline is returned
// without error.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Path reads a line and treats a lone "/" as a request to pick a file with
// fzf. If fzf is unavailable or cancelled, it falls back to a typed prompt.
func (p *Prompter) Path(prompt string) (string, error) {
	input, err := p.Line(prompt + " [enter path, or '/' to use fzf]: ")
	if err != nil || input != "/" {
		return input, err
	}
	if p.selectFile != nil {
		if sel, selErr := p.selectFile("."); selErr == nil && sel != "" {
			fmt.Fprintf(p.out, " [fzf] %s\n", sel)
			return sel, nil
		}
	}
	return p.Line(prompt + ": ")
}
