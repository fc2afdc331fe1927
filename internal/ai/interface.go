package ai

import "context"

// ImageSize identifies a supported output raster size
type ImageSize string

const (
	// ImageSizeSquare is the square preset used for feed-style platforms
	ImageSizeSquare ImageSize = "1024x1024"
	// ImageSizeLandscape is the wide preset used for landscape-oriented platforms
	ImageSizeLandscape ImageSize = "1792x1024"
)

// Dimensions returns the pixel width and height of the size preset
func (s ImageSize) Dimensions() (int, int) {
	switch s {
	case ImageSizeLandscape:
		return 1792, 1024
	default:
		return 1024, 1024
	}
}

// TextClient issues structured completion requests against a text model.
// Responses may be raw JSON or JSON wrapped in a fenced block; callers run
// them through ExtractJSONPayload before unmarshaling.
type TextClient interface {
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// ImageClient synthesizes a raster image from a prompt
type ImageClient interface {
	Synthesize(ctx context.Context, prompt string, size ImageSize) ([]byte, error)
}
