package pipeline

import (
	"image"
	"image/draw"
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"xray-diagnosis/internal/model"
)

const (
	// thumbnailBound caps both dimensions of the displayed image. Display
	// only, unrelated to the model's input size.
	thumbnailBound = 300
	// bannerHeight is the label band drawn across the top of the thumbnail.
	bannerHeight = 25
)

// Annotate reopens the image at path, scales it down so neither dimension
// exceeds 300 (aspect preserved, small images are left as is), and draws an
// opaque banner at the top in the label's color with the prediction text in
// white. Writes nothing; the result is a function of its inputs only.
func Annotate(path string, pred model.Prediction) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.ImageLoadError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &model.ImageLoadError{Path: path, Err: err}
	}

	thumb := resize.Thumbnail(thumbnailBound, thumbnailBound, src, resize.Lanczos3)

	// Redraw into RGBA so grayscale and paletted sources become 3-channel
	// and the banner can be composited.
	bounds := thumb.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), thumb, bounds.Min, draw.Src)

	banner := image.Rect(0, 0, dst.Bounds().Dx(), bannerHeight)
	draw.Draw(dst, banner, image.NewUniform(model.ColorFor(pred.Label)), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(5, 17),
	}
	drawer.DrawString(FormatPrediction(pred))

	return dst, nil
}
