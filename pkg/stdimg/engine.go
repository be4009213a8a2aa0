package stdimg

import (
	"fmt"
	"strconv"
)

// ApplyCommand runs the registry command name with textual args.
//
// Adjustments (brightness, contrast, saturation) mutate current in place and
// return it; current must not be nil. Every other command recomputes from original and returns a new
// buffer, leaving both inputs untouched. Unlike ApplyFilter, unknown names are
// an error here since callers pick names from Commands.
func ApplyCommand(original, current *Buffer, commandName string, args []string) (*Buffer, error) {
	if original == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	switch commandName {
	case "brightness", "contrast":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s requires 1 arg: value", commandName)
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", commandName, err)
		}
		kind := AdjustBrightness
		if commandName == "contrast" {
			kind = AdjustContrast
		}
		if current == nil {
			return nil, fmt.Errorf("%w: nil current buffer", ErrInvalidParameter)
		}
		return Dispatch(original, current, Adjustment{Kind: kind, Value: float64(v)})

	case "saturation":
		if len(args) != 1 {
			return nil, fmt.Errorf("saturation requires 1 arg: factor")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid saturation factor: %w", err)
		}
		if current == nil {
			return nil, fmt.Errorf("%w: nil current buffer", ErrInvalidParameter)
		}
		return Dispatch(original, current, Adjustment{Kind: AdjustSaturation, Value: v})

	case "gaussianBlur":
		// gaussianBlur [radius] [sigma]
		radius := DefaultGaussianRadius
		sigma := DefaultGaussianSigma
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid radius: %w", err)
			}
			radius = v
		}
		if len(args) >= 2 && args[1] != "" {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid sigma: %w", err)
			}
			sigma = v
		}
		k, err := Gaussian(radius, sigma)
		if err != nil {
			return nil, err
		}
		return Dispatch(original, current, Convolution{Kernel: k})

	default:
		spec, ok := ParseFilter(commandName)
		if !ok {
			return nil, fmt.Errorf("unsupported command: %s", commandName)
		}
		for _, a := range args {
			if a != "" {
				return nil, fmt.Errorf("%s takes no args", commandName)
			}
		}
		return Dispatch(original, current, spec)
	}
}
