package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
)

// Font candidates tried in order before falling back to the built-in face
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:/Windows/Fonts/arialbd.ttf",
}

// Composer synthesizes post backgrounds and composites overlay text locally.
// Background synthesis is the only external call; overlay rendering is fully
// deterministic.
type Composer struct {
	client    ai.ImageClient
	outputDir string
}

// NewComposer creates a composer writing images under outputDir
func NewComposer(client ai.ImageClient, outputDir string) (*Composer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image output directory: %w", err)
	}
	return &Composer{client: client, outputDir: outputDir}, nil
}

// SizeFor resolves a platform to its raster preset. Unrecognized platforms
// get the square preset.
func SizeFor(platform string) ai.ImageSize {
	if platform == "linkedin" {
		return ai.ImageSizeLandscape
	}
	return ai.ImageSizeSquare
}

// GenerateBackground synthesizes a background image for the post and saves it
// under a timestamped filename. Any synthesis, download or decode failure
// falls back to a solid placeholder in the first brand color; the returned
// path is empty only if even the placeholder cannot be written.
func (c *Composer) GenerateBackground(ctx context.Context, post models.Post, profile models.BrandProfile, platform string) string {
	size := SizeFor(platform)
	prompt := buildImagePrompt(post, profile, platform)

	logrus.Infof("Generating background image for variation %d", post.VariationNumber)
	data, err := c.client.Synthesize(ctx, prompt, size)
	if err != nil {
		logrus.Warnf("Image synthesis degraded to placeholder: %v", err)
		return c.Placeholder(size, profile)
	}

	path := c.imagePath("bg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.Warnf("Saving background failed, degrading to placeholder: %v", err)
		return c.Placeholder(size, profile)
	}

	// Reject payloads that are not decodable rasters
	if _, err := gg.LoadImage(path); err != nil {
		logrus.Warnf("Generated image is not decodable, degrading to placeholder: %v", err)
		return c.Placeholder(size, profile)
	}

	logrus.Infof("Background image saved to %s", path)
	return path
}

// Placeholder writes a solid raster in the brand's first primary color at the
// given size. It is the explicit fallback substitution for failed synthesis.
func (c *Composer) Placeholder(size ai.ImageSize, profile models.BrandProfile) string {
	w, h := size.Dimensions()

	dc := gg.NewContext(w, h)
	dc.SetHexColor(primaryColor(profile))
	dc.Clear()

	path := c.imagePath("bg")
	if err := dc.SavePNG(path); err != nil {
		logrus.Errorf("Failed to write placeholder image: %v", err)
		return ""
	}

	logrus.Infof("Placeholder background saved to %s", path)
	return path
}

// AddTextOverlay draws the overlay text onto a copy of the background:
// centered horizontally, anchored one third from the top, dark drop shadow
// under light primary text. On any rendering error the input path is
// returned unchanged so the background is never lost.
func (c *Composer) AddTextOverlay(imagePath, text string, profile models.BrandProfile) string {
	if imagePath == "" {
		return imagePath
	}

	img, err := gg.LoadImage(imagePath)
	if err != nil {
		logrus.Warnf("Overlay skipped, could not load image: %v", err)
		return imagePath
	}

	dc := gg.NewContextForImage(img)
	width := float64(dc.Width())
	height := float64(dc.Height())

	fontSize := width * 0.08
	if !loadFontFace(dc, fontSize) {
		dc.SetFontFace(basicfont.Face7x13)
	}

	textWidth, textHeight := dc.MeasureString(text)
	x := (width - textWidth) / 2
	y := height/3 + textHeight // baseline sits one text-height below the anchor

	const shadowOffset = 3
	dc.SetHexColor("#000000")
	dc.DrawString(text, x+shadowOffset, y+shadowOffset)
	dc.SetHexColor("#ffffff")
	dc.DrawString(text, x, y)

	path := c.imagePath("final")
	if err := dc.SavePNG(path); err != nil {
		logrus.Warnf("Overlay save failed, keeping background: %v", err)
		return imagePath
	}

	logrus.Infof("Text overlay added: %s", path)
	return path
}

func loadFontFace(dc *gg.Context, size float64) bool {
	for _, candidate := range fontCandidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := dc.LoadFontFace(candidate, size); err == nil {
			return true
		}
	}
	return false
}

func (c *Composer) imagePath(stage string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return filepath.Join(c.outputDir, fmt.Sprintf("%s_%s.png", stage, timestamp))
}

func primaryColor(profile models.BrandProfile) string {
	for _, hex := range profile.VisualIdentity.PrimaryColors {
		if _, _, _, ok := parseHex(hex); ok {
			return hex
		}
	}
	return "#1a73e8"
}

func buildImagePrompt(post models.Post, profile models.BrandProfile, platform string) string {
	colorNames := HexToColorNames(profile.VisualIdentity.PrimaryColors)

	designStyle := profile.VisualIdentity.DesignStyle
	if designStyle == "" {
		designStyle = "modern"
	}

	imageDesc := post.ImageDescription
	if imageDesc == "" {
		imageDesc = "professional tech background"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a professional social media background image for %s.\n\n", platform)
	fmt.Fprintf(&sb, "Style: %s, clean, modern\n", designStyle)
	fmt.Fprintf(&sb, "Colors: Use %s as primary colors\n", strings.Join(colorNames, ", "))
	fmt.Fprintf(&sb, "Theme: %s\n\n", imageDesc)
	sb.WriteString(`Requirements:
- Leave space in the center or top for text overlay
- High quality, professional look
- Suitable for corporate social media
- No text or words in the image
- Clean composition with good contrast
- Should look good on mobile devices

Make it visually appealing but not too busy - text will be overlaid on this image.`)

	return sb.String()
}
