package model

import "fmt"

// ImageLoadError reports that a file could not be read or decoded as an
// image. Batch callers treat it as "skip this image", not as a reason to
// abort.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// InferenceError reports a failed model invocation, including tensors whose
// shape does not match the model's input. Propagated the same way as
// ImageLoadError.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
