package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// SquarifyResult contains the squarified image and its size metadata.
//
// NaturalSize is the longer dimension of the input (the side of the padded
// square before resampling). EffectiveSize is the requested output size after
// clamping; the output image is always EffectiveSize x EffectiveSize.
type SquarifyResult struct {
	Image         *image.NRGBA `json:"-"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	NaturalSize   int          `json:"natural_size"`
	EffectiveSize int          `json:"effective_size"`
	ImageBase64   string       `json:"image_base64"`
	MimeType      string       `json:"mime_type"`
}

// Squarify pads an image to a square and resamples it to the desired size.
//
// The input is centered on a fully transparent canvas whose side equals the
// longer input dimension. Centering uses integer floor division, so an odd
// difference biases the content one pixel toward the top-left. The canvas is
// then resampled to desiredSize x desiredSize with a Lanczos filter.
//
// A desiredSize of 0 means "use the natural size". The size is clamped to the
// natural square side: the function never upsamples beyond it, since
// resampling cannot add detail the source does not have.
//
// Parameters:
//   - img: Source image. Any color model; promoted to NRGBA.
//   - desiredSize: Requested output side in pixels, or 0 for the natural size.
//     Negative values are rejected.
//
// Returns:
//   - *SquarifyResult: The square output image with natural and effective
//     sizes, plus a base64 PNG encoding.
//   - error: Non-nil for a negative desiredSize, an empty input image, or a
//     PNG encoding failure.
//
// Squarify is a pure function: it never modifies the input image and is safe
// to call concurrently on independent inputs.
func Squarify(img image.Image, desiredSize int) (*SquarifyResult, error) {
	if desiredSize < 0 {
		return nil, fmt.Errorf("desired size must be positive, got %d", desiredSize)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", width, height)
	}

	natural := width
	if height > natural {
		natural = height
	}

	// Clamp: never upsample past the natural square side.
	effective := desiredSize
	if effective == 0 || effective > natural {
		effective = natural
	}

	offsetX := (natural - width) / 2
	offsetY := (natural - height) / 2

	canvas := imaging.New(natural, natural, color.NRGBA{})
	// Paste is a straight pixel overwrite, not alpha compositing; the area
	// outside the source stays fully transparent and the source alpha is
	// carried through unchanged.
	canvas = imaging.Paste(canvas, img, image.Pt(offsetX, offsetY))

	out := canvas
	if effective != natural {
		out = imaging.Resize(canvas, effective, effective, imaging.Lanczos)
	}

	encoded, err := encodePNGBase64(out)
	if err != nil {
		return nil, err
	}

	return &SquarifyResult{
		Image:         out,
		Width:         effective,
		Height:        effective,
		NaturalSize:   natural,
		EffectiveSize: effective,
		ImageBase64:   encoded,
		MimeType:      "image/png",
	}, nil
}
