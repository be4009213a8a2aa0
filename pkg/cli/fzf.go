package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// imageExts are offered by the file picker; all of them decode in LoadImage.
var imageExts = []string{"jpg", "jpeg", "png", "gif", "tif", "tiff", "bmp", "webp"}

// fzfCommandLines formats the registry as "name: description" lines.
func fzfCommandLines(commands []stdimg.CommandSpec) string {
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Description)
	}
	return b.String()
}

// parseFzfSelection extracts the command name from a selected line.
func parseFzfSelection(selection string) (string, error) {
	name, _, _ := strings.Cut(strings.TrimSpace(selection), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("no command selected")
	}
	return name, nil
}

// SelectCommandWithFzf displays the commands in fzf and returns the selected name.
func SelectCommandWithFzf(commands []stdimg.CommandSpec) (string, error) {
	cmd := exec.Command("fzf", "--prompt=Filters> ")
	cmd.Stdin = strings.NewReader(fzfCommandLines(commands))
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	return parseFzfSelection(out.String())
}

// fzfPreviewCommand picks the best image renderer for the detected terminal.
// fzf substitutes {} with the highlighted path.
func fzfPreviewCommand() string {
	const chafa = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	switch {
	case isKitty():
		return `printf "\x1b_Ga=d\x1b\\"; kitty +kitten icat --silent {} 2>/dev/null || ` + chafa
	case isInlineImageCapable():
		return "imgcat {} 2>/dev/null || " + chafa
	case isSixelCapable():
		return "img2sixel {} 2>/dev/null || " + chafa
	}
	return chafa
}

// findImagesCommand builds the shell pipeline that lists images under dir
// and hands them to fzf.
func findImagesCommand(dir string) string {
	names := make([]string, len(imageExts))
	for i, ext := range imageExts {
		names[i] = "-iname '*." + ext + "'"
	}
	return fmt.Sprintf(
		"find %s -type f \\( %s \\) | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(dir),
		strings.Join(names, " -o "),
		fzfPreviewCommand(),
	)
}

// SelectFileWithFzf launches fzf over the image files found under startDir
// and returns the selected path. It needs find, bash and fzf on PATH.
func SelectFileWithFzf(startDir string) (string, error) {
	cmd := exec.Command("bash", "-lc", findImagesCommand(startDir))
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	// previewers may leave kitty images behind
	clearKittyImages()
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it ignore it.
func clearKittyImages() {
	fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
}
