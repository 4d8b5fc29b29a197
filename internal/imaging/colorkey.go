package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// MaskMode selects how the color keyer converts the key color to alpha.
type MaskMode int

const (
	// MaskFuzzy fades alpha proportionally to the Chebyshev distance between
	// each pixel and the key color: identical pixels become fully transparent,
	// pixels maximally different in any one channel fully opaque.
	MaskFuzzy MaskMode = iota

	// MaskExact produces a binary mask: pixels equal to the key color (or
	// already fully transparent) become transparent, everything else opaque.
	MaskExact
)

// String returns the mode name as used in tool arguments.
func (m MaskMode) String() string {
	switch m {
	case MaskFuzzy:
		return "fuzzy"
	case MaskExact:
		return "exact"
	default:
		return fmt.Sprintf("MaskMode(%d)", int(m))
	}
}

// ColorKeyResult contains the keyed image and the color that was keyed out.
//
// UsedColor reports the resolved key color; when auto-detection is enabled it
// is the color found at the top-left corner, otherwise the caller-supplied
// target. Callers surface it (hex plus decimal triple) to the user.
type ColorKeyResult struct {
	Image       *image.NRGBA `json:"-"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	UsedColor   ColorResult  `json:"used_color"`
	AutoDetect  bool         `json:"auto_detected"`
	Mode        string       `json:"mode"`
	ImageBase64 string       `json:"image_base64"`
	MimeType    string       `json:"mime_type"`
}

// ColorKey converts a designated background color into transparency.
//
// The key color is resolved first: with autoDetect true the RGB value of the
// pixel at the top-left corner is used (its alpha is ignored) and target is
// ignored; otherwise target is required. Channels are compared in normalized
// [0,1] space (value/255) so distances are scale-independent.
//
// In MaskExact mode the output alpha is binary: 0 where the pixel RGB equals
// the key color exactly or the source pixel was already fully transparent,
// 255 everywhere else. Partial source alpha outside a match is not preserved.
//
// In MaskFuzzy mode the output alpha is the Chebyshev (L-infinity) distance
// between the pixel and the key color, re-quantized to 0-255 by rounding.
// The source alpha channel is discarded entirely in this mode.
//
// Both modes pass the RGB channels through unchanged; only alpha is replaced.
//
// Parameters:
//   - img: Source image. Any color model; promoted to non-premultiplied NRGBA.
//   - target: Key color. Required unless autoDetect is true.
//   - mode: MaskFuzzy or MaskExact.
//   - autoDetect: Resolve the key color from the top-left pixel.
//
// Returns:
//   - *ColorKeyResult: The keyed image, the resolved key color in multiple
//     formats, and a base64 PNG encoding.
//   - error: Non-nil if no key color can be resolved, the image is empty, or
//     PNG encoding fails.
//
// ColorKey is a pure function over its inputs and is safe to call
// concurrently on independent images.
func ColorKey(img image.Image, target *RGBColor, mode MaskMode, autoDetect bool) (*ColorKeyResult, error) {
	if mode != MaskFuzzy && mode != MaskExact {
		return nil, fmt.Errorf("unknown mask mode %d", int(mode))
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	// Clone promotes to non-premultiplied NRGBA, so RGB channels survive an
	// alpha rewrite untouched.
	out := imaging.Clone(img)

	var used RGBColor
	if autoDetect {
		// Raw top-left channels, not color.Color.RGBA(): that method
		// premultiplies and would zero out a transparent corner's RGB.
		used = RGBColor{R: out.Pix[0], G: out.Pix[1], B: out.Pix[2]}
	} else {
		if target == nil {
			return nil, fmt.Errorf("no key color: target is required unless auto_detect is set")
		}
		used = *target
	}

	width := out.Bounds().Dx()
	height := out.Bounds().Dy()

	keyR := float64(used.R) / 255.0
	keyG := float64(used.G) / 255.0
	keyB := float64(used.B) / 255.0

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			row := out.Pix[y*out.Stride : y*out.Stride+width*4]
			for x := 0; x < width; x++ {
				px := row[x*4 : x*4+4]
				switch mode {
				case MaskExact:
					if (px[0] == used.R && px[1] == used.G && px[2] == used.B) || px[3] == 0 {
						px[3] = 0
					} else {
						px[3] = 255
					}
				case MaskFuzzy:
					d := math.Abs(float64(px[0])/255.0 - keyR)
					if dg := math.Abs(float64(px[1])/255.0 - keyG); dg > d {
						d = dg
					}
					if db := math.Abs(float64(px[2])/255.0 - keyB); db > d {
						d = db
					}
					// Round on re-quantization to avoid banding.
					px[3] = uint8(math.Round(d * 255.0))
				}
			}
		}
	})

	encoded, err := encodePNGBase64(out)
	if err != nil {
		return nil, err
	}

	return &ColorKeyResult{
		Image:       out,
		Width:       width,
		Height:      height,
		UsedColor:   used.Result(),
		AutoDetect:  autoDetect,
		Mode:        mode.String(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
