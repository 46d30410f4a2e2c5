package pipeline

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"

	"xray-diagnosis/internal/model"
)

// LoadTensor decodes the image at path and converts it into the normalized
// NHWC tensor the classifier expects: resized to width×height with Lanczos3,
// values scaled to [0,1], batch dimension 1. Grayscale sources replicate into
// three equal channels. The result is deterministic for identical input
// bytes.
func LoadTensor(path string, height, width int) (model.Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Tensor{}, &model.ImageLoadError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return model.Tensor{}, &model.ImageLoadError{Path: path, Err: err}
	}

	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	data := make([]float32, height*width*3)
	bounds := resized.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels; grayscale images come back
			// with r == g == b, which is exactly the channel replication
			// the model wants.
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			i := (y*width + x) * 3
			data[i] = float32(r) / 65535.0
			data[i+1] = float32(g) / 65535.0
			data[i+2] = float32(b) / 65535.0
		}
	}

	return model.Tensor{Data: data, Height: height, Width: width}, nil
}
