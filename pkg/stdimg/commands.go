// Package stdimg: authoritative registry of engine commands.
//
// This file mirrors the commands implemented in ApplyCommand in
// pkg/stdimg/engine.go. Keep this list up-to-date when you add or
// modify commands so callers (CLI, docs, help text) can read a single
// source of truth.

package stdimg

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "path", etc.
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
	// Cumulative commands adjust the current image in place; the others are
	// recomputed from the original image.
	Cumulative bool
}

// Commands is the authoritative list of commands implemented by the engine.
// Keep this synchronized with ApplyCommand in pkg/stdimg/engine.go.
var Commands = []CommandSpec{
	{
		Name:        "brightness",
		Args:        []ArgSpec{{"value", "int", true, "", "amount added to R, G and B (e.g. 20 or -20)"}},
		Usage:       "brightness <value>",
		Description: "Add a constant to every color channel.",
		Cumulative:  true,
	},
	{
		Name:        "contrast",
		Args:        []ArgSpec{{"value", "int", true, "", "contrast in (-255, 259); 0 is unchanged"}},
		Usage:       "contrast <value>",
		Description: "Stretch or compress channels around mid-gray.",
		Cumulative:  true,
	},
	{
		Name:        "saturation",
		Args:        []ArgSpec{{"factor", "float", true, "", "0 = gray, 1 = unchanged, >1 = boost"}},
		Usage:       "saturation <factor>",
		Description: "Scale each channel's distance from the pixel's brightest channel.",
		Cumulative:  true,
	},
	{
		Name:        "original",
		Args:        []ArgSpec{},
		Usage:       "original",
		Description: "Restore the original image.",
	},
	{
		Name:        "inverted",
		Args:        []ArgSpec{},
		Usage:       "inverted",
		Description: "Invert colors.",
	},
	{
		Name:        "grayscale",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Average R, G and B.",
	},
	{
		Name:        "sepia",
		Args:        []ArgSpec{},
		Usage:       "sepia",
		Description: "Classic sepia matrix.",
	},
	{
		Name:        "sunset",
		Args:        []ArgSpec{},
		Usage:       "sunset",
		Description: "Warm tint (green from red +50, blue +12).",
	},
	{
		Name:        "haze",
		Args:        []ArgSpec{},
		Usage:       "haze",
		Description: "Washed-out tint (+90, +90, +10).",
	},
	{
		Name:        "serenity",
		Args:        []ArgSpec{},
		Usage:       "serenity",
		Description: "Cool tint (+10, +40, +90).",
	},
	{
		Name:        "vintage",
		Args:        []ArgSpec{},
		Usage:       "vintage",
		Description: "Faded warm tint (+120, +70, +13).",
	},
	{
		Name:        "lemon",
		Args:        []ArgSpec{},
		Usage:       "lemon",
		Description: "Yellow tint (green from red +50).",
	},
	{
		Name:        "gaussianBlur",
		Args:        []ArgSpec{{"radius", "int", false, "5", "kernel radius (size 2*radius+1)"}, {"sigma", "float", false, "2", "gaussian sigma"}},
		Usage:       "gaussianBlur [radius] [sigma]",
		Description: "Gaussian blur (alpha blurred too).",
	},
	{
		Name:        "edgeDetection",
		Args:        []ArgSpec{},
		Usage:       "edgeDetection",
		Description: "3x3 Laplacian edge detector.",
	},
	{
		Name:        "sharpen",
		Args:        []ArgSpec{},
		Usage:       "sharpen",
		Description: "3x3 sharpen.",
	},
	{
		Name:        "boxBlur",
		Args:        []ArgSpec{},
		Usage:       "boxBlur",
		Description: "3x3 mean blur.",
	},
	{
		Name:        "focus",
		Args:        []ArgSpec{},
		Usage:       "focus",
		Description: "3x3 diagonal focus.",
	},
	{
		Name:        "emboss",
		Args:        []ArgSpec{},
		Usage:       "emboss",
		Description: "3x3 emboss.",
	},
	{
		Name:        "focus5x5",
		Args:        []ArgSpec{},
		Usage:       "focus5x5",
		Description: "5x5 focus.",
	},
	{
		Name:        "gradientEmboss",
		Args:        []ArgSpec{},
		Usage:       "gradientEmboss",
		Description: "5x5 vertical gradient emboss.",
	},
}

// LookupCommand returns the registry entry for name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
