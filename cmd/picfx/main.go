// Command picfx applies color adjustments, color-map filters and
// convolution filters to images, interactively or in batch.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/picfx/pkg/cli"
	"github.com/Fepozopo/picfx/pkg/stdimg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg cli.Config
	root := &cobra.Command{
		Use:          "picfx [image]",
		Short:        "Terminal image filters",
		Args:         cobra.MaximumNArgs(1),
		Version:      cli.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			cfg = c
			cli.Setup(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return cli.RunCLI(cfg, path)
		},
	}
	root.AddCommand(
		newApplyCmd(&cfg),
		newFiltersCmd(),
		newPickCmd(&cfg),
	)
	return root
}

type applyOptions struct {
	input, output string
	filter        string
	brightness    int
	contrast      int
	saturation    float64
}

func newApplyCmd(cfg *cli.Config) *cobra.Command {
	var opts applyOptions
	cmd := &cobra.Command{
		Use:   "apply -i input -o output [--filter id] [--brightness n] [--contrast n] [--saturation f]",
		Short: "Apply a filter and adjustments to an image file",
		Long: "Apply runs the named filter on the input image first, then brightness,\n" +
			"contrast and saturation in that order, and writes the result.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := runApply(*cfg, opts, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", written)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input image")
	f.StringVarP(&opts.output, "output", "o", "", "output image (PNG when no extension)")
	f.StringVar(&opts.filter, "filter", "", "filter id, see 'picfx filters'")
	f.IntVar(&opts.brightness, "brightness", 0, "brightness delta")
	f.IntVar(&opts.contrast, "contrast", 0, "contrast in (-255, 259)")
	f.Float64Var(&opts.saturation, "saturation", 1, "saturation factor")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runApply(cfg cli.Config, opts applyOptions, changed func(string) bool) (string, error) {
	s := cli.NewSession(cfg)
	if err := s.Open(opts.input); err != nil {
		return "", err
	}
	if opts.filter != "" {
		if _, ok := stdimg.ParseFilter(opts.filter); !ok {
			return "", fmt.Errorf("unknown filter %q", opts.filter)
		}
		if err := s.Apply(opts.filter, nil); err != nil {
			return "", err
		}
	}
	adjustments := []struct {
		flag  string
		kind  stdimg.AdjustKind
		value float64
	}{
		{"brightness", stdimg.AdjustBrightness, float64(opts.brightness)},
		{"contrast", stdimg.AdjustContrast, float64(opts.contrast)},
		{"saturation", stdimg.AdjustSaturation, opts.saturation},
	}
	for _, a := range adjustments {
		if !changed(a.flag) {
			continue
		}
		if err := s.Adjust(a.kind, a.value); err != nil {
			return "", fmt.Errorf("%s: %w", a.flag, err)
		}
	}
	return s.Save(opts.output)
}

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List filters and adjustments",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, c := range stdimg.Commands {
				kind := "filter"
				if c.Cumulative {
					kind = "adjust"
				}
				fmt.Fprintf(w, "%-16s %-7s %s\n", c.Name, kind, c.Description)
			}
		},
	}
}

func newPickCmd(cfg *cli.Config) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "pick -i input x y",
		Short: "Print the CSS rgba() color of one pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}
			s := cli.NewSession(*cfg)
			if err := s.Open(input); err != nil {
				return err
			}
			css, err := s.PickColor(x, y)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), css)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input image")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
