package cli

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompterLineAndKey(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("  /apply\n\n  two words  \nlast"), &out)

	k, err := p.ReadKey("> ")
	if err != nil || k != '/' {
		t.Fatalf("ReadKey = %q, %v", k, err)
	}
	k, err = p.ReadKey("> ")
	if err != nil || k != 0 {
		t.Fatalf("blank line: ReadKey = %q, %v", k, err)
	}
	line, err := p.Line("name: ")
	if err != nil || line != "two words" {
		t.Fatalf("Line = %q, %v", line, err)
	}
	line, err = p.Line("name: ")
	if err != nil || line != "last" {
		t.Fatalf("final line without newline = %q, %v", line, err)
	}
	if _, err := p.Line("name: "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if _, err := p.ReadKey("> "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if got := strings.Count(out.String(), "> "); got != 3 {
		t.Fatalf("expected 3 key prompts, got %d in %q", got, out.String())
	}
}

func TestPrompterPathUsesPicker(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("/\n/\ntyped.png\nplain.png\n"), &out)
	calls := 0
	p.selectFile = func(dir string) (string, error) {
		calls++
		if calls == 1 {
			return "picked.png", nil
		}
		return "", errors.New("fzf not found")
	}

	got, err := p.Path("Image")
	if err != nil || got != "picked.png" {
		t.Fatalf("Path = %q, %v", got, err)
	}
	got, err = p.Path("Image")
	if err != nil || got != "typed.png" {
		t.Fatalf("fallback Path = %q, %v", got, err)
	}
	got, err = p.Path("Image")
	if err != nil || got != "plain.png" {
		t.Fatalf("plain Path = %q, %v", got, err)
	}
	if !strings.Contains(out.String(), "[fzf] picked.png") {
		t.Fatalf("missing fzf indicator in %q", out.String())
	}
}
