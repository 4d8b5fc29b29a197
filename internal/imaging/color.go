package imaging

import (
	"fmt"
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255. This is the key-color type used by
// the color keyer; it deliberately has no alpha component.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Result expands the color into all representations of a ColorResult.
func (c RGBColor) Result() ColorResult {
	return ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:  c,
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: 255},
		HSL:  rgbToHSL(c.R, c.G, c.B),
	}
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity: 0 = fully transparent, 255 = fully
// opaque.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// The same color is provided in four formats to suit different use cases:
// Hex for display, RGB/RGBA for numeric handling, HSL for perceptual
// reasoning.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// ParseHexColor parses a "#RRGGBB" (or "#RGB") hex string into an RGBColor.
//
// Returns an error for anything that is not a well-formed hex color; callers
// treat that as an invalid parameter rather than coercing a default.
func ParseHexColor(s string) (RGBColor, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. The native color is read
// from the image and converted to 8-bit components; 16-bit images are scaled
// down by right-shifting 8 bits. The Hex format excludes alpha; use RGBA.A
// for transparency information.
//
// Returns an error if the coordinates fall outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  rgbToHSL(r8, g8, b8),
	}, nil
}

// BackgroundResult contains a suggested background color for keying.
//
// Coverage is the share of border pixels (in percent) that fall into the
// winning color bucket; low coverage means the border is not uniform and the
// suggestion should be treated with suspicion.
type BackgroundResult struct {
	Color    ColorResult `json:"color"`
	Coverage float64     `json:"coverage_percent"`
}

// DetectBackground suggests a background color by analyzing the image border.
//
// Every pixel of the outermost rows and columns is counted after quantizing
// each channel to 16-value buckets (colors within 16 units per component are
// grouped), and the most frequent bucket wins. This is a suggestion helper
// for picking a key color; the color keyer's auto-detect mode itself uses
// exactly the top-left pixel.
//
// Returns an error for an empty image.
func DetectBackground(img image.Image) (*BackgroundResult, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	counts := make(map[RGBColor]int)
	total := 0
	count := func(x, y int) {
		r, g, b, _ := img.At(x, y).RGBA()
		q := RGBColor{
			R: uint8((r >> 8) / 16 * 16),
			G: uint8((g >> 8) / 16 * 16),
			B: uint8((b >> 8) / 16 * 16),
		}
		counts[q]++
		total++
	}

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		count(x, bounds.Min.Y)
		if bounds.Dy() > 1 {
			count(x, bounds.Max.Y-1)
		}
	}
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		count(bounds.Min.X, y)
		if bounds.Dx() > 1 {
			count(bounds.Max.X-1, y)
		}
	}

	var best RGBColor
	bestCount := -1
	for c, n := range counts {
		if n > bestCount {
			best, bestCount = c, n
		}
	}

	return &BackgroundResult{
		Color:    best.Result(),
		Coverage: float64(bestCount) / float64(total) * 100,
	}, nil
}

// rgbToHSL converts 8-bit RGB values to HSL color space via go-colorful.
//
// Returns H in 0-360 degrees, S and L as 0-100 percentages.
func rgbToHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
