package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	// Check hex
	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}

	// Check RGB
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}

	// Check RGBA
	if result.RGBA.R != 255 || result.RGBA.G != 128 || result.RGBA.B != 64 || result.RGBA.A != 255 {
		t.Errorf("RGBA: got (%d,%d,%d,%d), want (255,128,64,255)",
			result.RGBA.R, result.RGBA.G, result.RGBA.B, result.RGBA.A)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
		wantHue int
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#FF0000", 0},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00FF00", 120},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000FF", 240},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", 0},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL.H != tt.wantHue {
				t.Errorf("Hue: got %d, want %d", result.HSL.H, tt.wantHue)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"top-left", 0, 0},
		{"top-right", 99, 0},
		{"bottom-left", 0, 99},
		{"bottom-right", 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Errorf("SampleColor failed for valid edge coordinate (%d,%d): %v", tt.x, tt.y, err)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RGBColor
	}{
		{"white", "#FFFFFF", RGBColor{255, 255, 255}},
		{"black", "#000000", RGBColor{0, 0, 0}},
		{"lowercase", "#0a141e", RGBColor{10, 20, 30}},
		{"mixed case", "#Ff8040", RGBColor{255, 128, 64}},
		{"short form", "#fff", RGBColor{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q): got %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	tests := []string{"", "FFFFFF", "#GGGGGG", "#12345", "white"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseHexColor(input); err == nil {
				t.Errorf("ParseHexColor(%q) should fail", input)
			}
		})
	}
}

func TestRGBColor_Result(t *testing.T) {
	result := RGBColor{R: 10, G: 20, B: 30}.Result()

	if result.Hex != "#0A141E" {
		t.Errorf("Hex: got %s, want #0A141E", result.Hex)
	}
	if result.RGB != (RGBColor{10, 20, 30}) {
		t.Errorf("RGB: got %+v, want {10 20 30}", result.RGB)
	}
	if result.RGBA.A != 255 {
		t.Errorf("RGBA.A: got %d, want 255", result.RGBA.A)
	}
}

func TestDetectBackground_UniformBorder(t *testing.T) {
	// White image with a red block in the middle; the border is all white.
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	result, err := DetectBackground(img)
	if err != nil {
		t.Fatalf("DetectBackground failed: %v", err)
	}

	// 255 quantizes to the 240 bucket.
	if result.Color.RGB != (RGBColor{240, 240, 240}) {
		t.Errorf("color: got %+v, want {240 240 240}", result.Color.RGB)
	}
	if result.Coverage != 100 {
		t.Errorf("coverage: got %.1f, want 100", result.Coverage)
	}
}

func TestDetectBackground_MajorityWins(t *testing.T) {
	// Black border except for the top row, which is white.
	img := createInMemoryImage(10, 10, color.RGBA{0, 0, 0, 255}).(*image.RGBA)
	for x := 0; x < 10; x++ {
		img.Set(x, 0, color.RGBA{255, 255, 255, 255})
	}

	result, err := DetectBackground(img)
	if err != nil {
		t.Fatalf("DetectBackground failed: %v", err)
	}

	if result.Color.RGB != (RGBColor{0, 0, 0}) {
		t.Errorf("color: got %+v, want {0 0 0}", result.Color.RGB)
	}
	if result.Coverage >= 100 || result.Coverage <= 50 {
		t.Errorf("coverage: got %.1f, want between 50 and 100", result.Coverage)
	}
}

func TestDetectBackground_GroupsSimilarColors(t *testing.T) {
	// Near-identical off-whites must land in one bucket.
	img := image.NewRGBA(image.Rect(0, 0, 10, 1))
	for x := 0; x < 10; x++ {
		v := uint8(240 + x) // 240..249, same 16-value bucket
		img.Set(x, 0, color.RGBA{v, v, v, 255})
	}

	result, err := DetectBackground(img)
	if err != nil {
		t.Fatalf("DetectBackground failed: %v", err)
	}

	if result.Color.RGB != (RGBColor{240, 240, 240}) {
		t.Errorf("color: got %+v, want {240 240 240}", result.Color.RGB)
	}
	if result.Coverage != 100 {
		t.Errorf("coverage: got %.1f, want 100", result.Coverage)
	}
}

func TestDetectBackground_EmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := DetectBackground(img); err == nil {
		t.Error("DetectBackground should fail for an empty image")
	}
}
