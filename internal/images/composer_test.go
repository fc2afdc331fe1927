package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
)

type stubImageClient struct {
	data []byte
	err  error
}

func (s *stubImageClient) Synthesize(_ context.Context, _ string, _ ai.ImageSize) ([]byte, error) {
	return s.data, s.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func brandedProfile() models.BrandProfile {
	return models.BrandProfile{
		VisualIdentity: models.VisualIdentity{
			PrimaryColors: []string{"#34a853"},
			DesignStyle:   "minimal",
		},
	}
}

func TestSizeFor(t *testing.T) {
	assert.Equal(t, ai.ImageSizeLandscape, SizeFor("linkedin"))
	assert.Equal(t, ai.ImageSizeSquare, SizeFor("instagram"))
	// Unrecognized platforms get the square preset
	assert.Equal(t, ai.ImageSizeSquare, SizeFor("mastodon"))
}

func TestGenerateBackground_SavesSynthesizedImage(t *testing.T) {
	client := &stubImageClient{data: pngBytes(t, 64, 64)}
	composer, err := NewComposer(client, t.TempDir())
	require.NoError(t, err)

	path := composer.GenerateBackground(context.Background(), models.Post{ImageDescription: "rocket"}, brandedProfile(), "instagram")

	require.NotEmpty(t, path)
	assert.Contains(t, path, "bg_")

	img, err := gg.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestGenerateBackground_FallsBackToPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		client *stubImageClient
	}{
		{"Synthesis error", &stubImageClient{err: errors.New("quota exceeded")}},
		{"Undecodable payload", &stubImageClient{data: []byte("definitely not a png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer, err := NewComposer(tt.client, t.TempDir())
			require.NoError(t, err)

			path := composer.GenerateBackground(context.Background(), models.Post{}, brandedProfile(), "instagram")

			require.NotEmpty(t, path)

			img, err := gg.LoadImage(path)
			require.NoError(t, err)

			// Placeholder has the resolved platform dimensions and the brand color
			w, h := ai.ImageSizeSquare.Dimensions()
			assert.Equal(t, w, img.Bounds().Dx())
			assert.Equal(t, h, img.Bounds().Dy())

			r, g, b, _ := img.At(10, 10).RGBA()
			expected := color.RGBA{R: 0x34, G: 0xa8, B: 0x53}
			assert.Equal(t, uint32(expected.R), r>>8)
			assert.Equal(t, uint32(expected.G), g>>8)
			assert.Equal(t, uint32(expected.B), b>>8)
		})
	}
}

func TestAddTextOverlay_ProducesNewFile(t *testing.T) {
	composer, err := NewComposer(&stubImageClient{}, t.TempDir())
	require.NoError(t, err)

	background := composer.Placeholder(ai.ImageSizeSquare, brandedProfile())
	require.NotEmpty(t, background)

	final := composer.AddTextOverlay(background, "Launch day", brandedProfile())

	assert.NotEqual(t, background, final)
	assert.Contains(t, final, "final_")

	_, err = gg.LoadImage(final)
	assert.NoError(t, err)
}

func TestAddTextOverlay_FailureReturnsInputUnchanged(t *testing.T) {
	composer, err := NewComposer(&stubImageClient{}, t.TempDir())
	require.NoError(t, err)

	missing := "does/not/exist.png"
	assert.Equal(t, missing, composer.AddTextOverlay(missing, "text", brandedProfile()))

	// An empty handle passes straight through
	assert.Equal(t, "", composer.AddTextOverlay("", "text", brandedProfile()))
}
