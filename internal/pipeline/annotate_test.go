package pipeline

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"xray-diagnosis/internal/model"
)

func TestAnnotateScalesDown(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "tall.png", colorImage(400, 600))

	out, err := Annotate(path, model.Prediction{Label: "NORMAL", Confidence: 88.5})
	require.NoError(t, err)

	bounds := out.Bounds()
	require.LessOrEqual(t, bounds.Dx(), 300)
	require.LessOrEqual(t, bounds.Dy(), 300)
	// Aspect ratio preserved: 400x600 fits as 200x300.
	require.Equal(t, 200, bounds.Dx())
	require.Equal(t, 300, bounds.Dy())
}

func TestAnnotateKeepsSmallImages(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "small.png", colorImage(100, 80))

	out, err := Annotate(path, model.Prediction{Label: "TB", Confidence: 50})
	require.NoError(t, err)
	require.Equal(t, 100, out.Bounds().Dx())
	require.Equal(t, 80, out.Bounds().Dy())
}

func TestAnnotateBannerColor(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "scan.png", colorImage(200, 200))

	out, err := Annotate(path, model.Prediction{Label: "COVID", Confidence: 97.3})
	require.NoError(t, err)

	// The top band is filled with the label color; sample a corner away
	// from the text.
	want := model.ColorFor("COVID")
	r, g, b, _ := out.At(out.Bounds().Dx()-2, 2).RGBA()
	require.Equal(t, uint32(want.R), r>>8)
	require.Equal(t, uint32(want.G), g>>8)
	require.Equal(t, uint32(want.B), b>>8)
}

func TestAnnotateUnknownLabelUsesDefaultColor(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "scan.png", colorImage(200, 200))

	out, err := Annotate(path, model.Prediction{Label: "UNKNOWN", Confidence: 10})
	require.NoError(t, err)

	r, g, b, _ := out.At(out.Bounds().Dx()-2, 2).RGBA()
	require.Equal(t, color.RGBA{0, 0, 0, 0xFF}, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xFF})
}

func TestAnnotateGrayscaleSource(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "gray.png", grayImage(320, 320))

	out, err := Annotate(path, model.Prediction{Label: "PNEUMONIA", Confidence: 75})
	require.NoError(t, err)
	require.Equal(t, 300, out.Bounds().Dx())
	require.Equal(t, 300, out.Bounds().Dy())
}

func TestAnnotateMissingFile(t *testing.T) {
	_, err := Annotate(filepath.Join(t.TempDir(), "missing.png"), model.Prediction{Label: "NORMAL"})

	var loadErr *model.ImageLoadError
	require.ErrorAs(t, err, &loadErr)
}
