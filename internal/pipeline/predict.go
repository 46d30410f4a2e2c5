package pipeline

import (
	"fmt"

	"xray-diagnosis/internal/model"
)

// Predict classifies the image file at path: preprocess to the classifier's
// input geometry, then run inference. Errors are either *model.ImageLoadError
// or *model.InferenceError.
func Predict(c model.Classifier, path string) (model.Prediction, error) {
	height, width := c.InputSize()

	tensor, err := LoadTensor(path, height, width)
	if err != nil {
		return model.Prediction{}, err
	}

	return c.Classify(tensor)
}

// FormatConfidence renders a confidence percentage with two fixed decimals,
// e.g. "97.35%". The same formatting is used in the report, the result list
// and the annotation banner.
func FormatConfidence(confidence float32) string {
	return fmt.Sprintf("%.2f%%", confidence)
}

// FormatPrediction renders the annotation banner text, e.g. "NORMAL (97.35%)".
func FormatPrediction(p model.Prediction) string {
	return fmt.Sprintf("%s (%s)", p.Label, FormatConfidence(p.Confidence))
}
