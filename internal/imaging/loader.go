package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// maxFetchBytes caps how much image data a single URL fetch may read.
const maxFetchBytes = 64 << 20

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads and network fetches.
//
// Images are keyed by the exact source string used to load them: a file path
// or an http(s) URL. Once decoded, subsequent Load() calls for the same
// source return the cached copy.
//
// ImageCache is safe for concurrent use by multiple goroutines. Cached images
// remain in memory until explicitly removed via Evict() or Clear(); for
// long-running processes handling many images, consider periodic cleanup.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	client *http.Client
}

type cacheEntry struct {
	img    image.Image
	format string
}

// NewImageCache creates and initializes a new empty image cache.
//
// The returned cache is ready for immediate use and is safe for concurrent
// access. URL fetches use a 30 second timeout.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]cacheEntry),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsURL reports whether a source string is an http(s) URL rather than a
// local file path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load retrieves an image from the cache, or decodes it from disk or the
// network if not cached.
//
// Parameters:
//   - source: A local file path or an http(s) URL. Supported formats are
//     PNG, JPEG, GIF, BMP, TIFF, and WebP.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image
//     format and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the source cannot be read or decoded. Decode failures
//     are reported as-is so the caller can distinguish a bad image from an
//     unreachable source.
//
// The image is cached using the exact source string provided. Different
// strings for the same file (relative vs absolute path) result in separate
// cache entries.
func (c *ImageCache) Load(source string) (image.Image, error) {
	img, _, err := c.load(source)
	return img, err
}

func (c *ImageCache) load(source string) (image.Image, string, error) {
	c.mu.RLock()
	if e, ok := c.entries[source]; ok {
		c.mu.RUnlock()
		return e.img, e.format, nil
	}
	c.mu.RUnlock()

	var r io.ReadCloser
	if IsURL(source) {
		resp, err := c.client.Get(source)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch image: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, "", fmt.Errorf("failed to fetch image: %s returned %s", source, resp.Status)
		}
		r = struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, maxFetchBytes), resp.Body}
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open image: %w", err)
		}
		r = f
	}
	defer r.Close()

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.entries[source] = cacheEntry{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its source string.
//
// If the source is not in the cache, this method does nothing. After
// eviction, the next Load() call re-reads the source.
func (c *ImageCache) Evict(source string) {
	c.mu.Lock()
	delete(c.entries, source)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded image format as registered with the image
	// package: "png", "jpeg", "gif", "bmp", "tiff", or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Source is "file" or "url" depending on how the image was loaded.
	Source string `json:"source"`

	// FileSizeBytes is the on-disk size for file sources; omitted for URLs.
	FileSizeBytes int64 `json:"file_size_bytes,omitempty"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// The image is loaded into the cache (if not already cached). The format is
// taken from the decoder that handled the image, not from the source's
// extension.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - source: File path or http(s) URL.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded, or a file source cannot
//     be stat'd.
func LoadImageInfo(cache *ImageCache, source string) (*ImageInfo, error) {
	img, format, err := cache.load(source)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ColorDepth: "8-bit",
		Source:     "file",
	}

	if IsURL(source) {
		info.Source = "url"
	} else {
		stat, err := os.Stat(source)
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		info.FileSizeBytes = stat.Size()
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray16:
		info.ColorDepth = "16-bit"
	}

	return info, nil
}

// DimensionsResult contains the width and height of an image.
//
// This is a lightweight result type for when only dimensions are needed.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without other metadata.
//
// The image is loaded into the cache if not already present.
func GetDimensions(cache *ImageCache, source string) (*DimensionsResult, error) {
	img, err := cache.Load(source)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
