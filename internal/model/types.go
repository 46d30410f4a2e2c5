package model

import "image/color"

// Labels is the fixed set of diagnostic categories the classifier outputs.
// The order is significant: index i of the model's output vector corresponds
// to Labels[i].
var Labels = []string{"COVID", "TB", "PNEUMONIA", "NORMAL"}

var labelColors = map[string]color.RGBA{
	"COVID":     {R: 0xFF, G: 0x4C, B: 0x4C, A: 0xFF},
	"TB":        {R: 0xFF, G: 0x99, B: 0x00, A: 0xFF},
	"PNEUMONIA": {R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF},
	"NORMAL":    {R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
}

var defaultColor = color.RGBA{A: 0xFF} // black

// ColorFor returns the display color for a label, falling back to black for
// unrecognized labels.
func ColorFor(label string) color.RGBA {
	if c, ok := labelColors[label]; ok {
		return c
	}
	return defaultColor
}

// Tensor is a normalized image in NHWC layout with batch size 1: Data holds
// Height*Width*3 float32 values in [0,1], row-major, channels interleaved.
type Tensor struct {
	Data   []float32
	Height int
	Width  int
}

// Prediction is the classifier's answer for one image.
type Prediction struct {
	Label      string             // one of Labels
	Confidence float32            // percentage in [0,100]
	Scores     map[string]float32 // raw probability per label
}

// Classifier turns a preprocessed tensor into a prediction. Implementations
// are invoked strictly sequentially; Classify is not safe for concurrent use.
type Classifier interface {
	// Classify runs inference on t. t must have the shape reported by
	// InputSize or an *InferenceError is returned.
	Classify(t Tensor) (Prediction, error)

	// InputSize reports the only tensor geometry the model accepts, fixed
	// for the lifetime of the process.
	InputSize() (height, width int)

	// Close releases the model's resources.
	Close()
}
