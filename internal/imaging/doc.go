// Package imaging implements the squarify and color-key transformations.
//
// The two core operations are Squarify, which centers an image on a
// transparent square canvas and resamples it to a requested size, and
// ColorKey, which converts a designated background color into transparency by
// exact masking or a Chebyshev-distance alpha fade. Supporting functions
// cover loading/decoding (with caching), pixel color sampling, background
// color suggestion, and PNG write-out.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Purity and Thread Safety
//
// Squarify and ColorKey are pure functions: they allocate a fresh output and
// never modify their input, so they can be called concurrently on independent
// images with no synchronization. The ImageCache type is safe for concurrent
// use.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// Internally, color comparisons happen in normalized [0,1] space (channel
// value divided by 255); results are re-quantized to 8 bits by rounding.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Negative output sizes
//   - A missing key color when auto-detection is disabled
//   - Coordinates outside image bounds
//   - Unreadable or undecodable image sources
//   - Encoding errors during image output
//
// Transformations never return partial results: a call either fully succeeds
// or fails.
package imaging
