package model

import (
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXClassifier runs a pretrained ONNX classifier. The session and its
// input/output tensors are created once at load time and reused for every
// call; the model's input geometry is read from the artifact itself.
type ONNXClassifier struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	labels       []string
	height       int
	width        int
}

// NewONNXClassifier loads the model at modelPath and prepares a reusable
// session. The model must declare a (1,H,W,3) float input and a (1,len(labels))
// output. Honors ONNXRUNTIME_SHARED_LIBRARY when the runtime library is not
// on the default search path.
func NewONNXClassifier(modelPath string, labels []string) (*ONNXClassifier, error) {
	if lib := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY"); lib != "" {
		ort.SetSharedLibraryPath(lib)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model %s: %w", modelPath, err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("expected a single-input single-output model, got %d inputs and %d outputs",
			len(inputs), len(outputs))
	}

	height, width, err := inputGeometry(inputs[0].Dimensions)
	if err != nil {
		return nil, err
	}
	if err := checkClassCount(outputs[0].Dimensions, len(labels)); err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(height), int64(width), 3))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(labels))))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		labels:       labels,
		height:       height,
		width:        width,
	}, nil
}

// inputGeometry extracts H and W from a declared NHWC input shape. A dynamic
// batch dimension is tolerated; H, W and the channel count must be static.
func inputGeometry(dims []int64) (height, width int, err error) {
	if len(dims) != 4 {
		return 0, 0, fmt.Errorf("expected a 4-dimensional model input, got shape %v", dims)
	}
	if dims[3] != 3 {
		return 0, 0, fmt.Errorf("expected a 3-channel NHWC model input, got shape %v", dims)
	}
	if dims[1] <= 0 || dims[2] <= 0 {
		return 0, 0, fmt.Errorf("model input height and width must be static, got shape %v", dims)
	}
	return int(dims[1]), int(dims[2]), nil
}

func checkClassCount(dims []int64, want int) error {
	if len(dims) == 0 {
		return fmt.Errorf("model declares no output shape")
	}
	classes := dims[len(dims)-1]
	if classes > 0 && classes != int64(want) {
		return fmt.Errorf("model outputs %d classes, expected %d", classes, want)
	}
	return nil
}

// InputSize reports the only tensor geometry Classify accepts.
func (c *ONNXClassifier) InputSize() (height, width int) {
	return c.height, c.width
}

// Classify runs the model on t and reduces the output distribution to the
// most likely label. Ties pick the lowest index.
func (c *ONNXClassifier) Classify(t Tensor) (Prediction, error) {
	if t.Height != c.height || t.Width != c.width || len(t.Data) != c.height*c.width*3 {
		return Prediction{}, &InferenceError{
			Err: fmt.Errorf("tensor shape (1,%d,%d,3) with %d values does not match model input (1,%d,%d,3)",
				t.Height, t.Width, len(t.Data), c.height, c.width),
		}
	}

	copy(c.inputTensor.GetData(), t.Data)

	if err := c.session.Run(); err != nil {
		return Prediction{}, &InferenceError{Err: err}
	}

	probs := c.outputTensor.GetData()
	idx := argMax(probs)

	scores := make(map[string]float32, len(c.labels))
	for i, label := range c.labels {
		if i < len(probs) {
			scores[label] = probs[i]
		}
	}

	return Prediction{
		Label:      c.labels[idx],
		Confidence: probs[idx] * 100,
		Scores:     scores,
	}, nil
}

// Close releases the session and tensors. The classifier is unusable
// afterwards.
func (c *ONNXClassifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}

// argMax returns the index of the largest value, preferring the lowest index
// on exact ties.
func argMax(values []float32) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
