package model

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgMax(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		want   int
	}{
		{"single", []float32{0.3}, 0},
		{"last wins", []float32{0.1, 0.2, 0.6, 0.1}, 2},
		{"first wins", []float32{0.9, 0.05, 0.03, 0.02}, 0},
		{"tie picks lowest index", []float32{0.2, 0.4, 0.4, 0.0}, 1},
		{"three-way tie picks lowest index", []float32{0.5, 0.5, 0.2, 0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, argMax(tt.values))
		})
	}
}

func TestColorFor(t *testing.T) {
	require.Equal(t, color.RGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}, ColorFor("NORMAL"))
	require.Equal(t, color.RGBA{R: 0xFF, G: 0x4C, B: 0x4C, A: 0xFF}, ColorFor("COVID"))

	// Unknown labels fall back to black.
	require.Equal(t, color.RGBA{A: 0xFF}, ColorFor("SOMETHING_ELSE"))
}

func TestLabelsOrder(t *testing.T) {
	require.Equal(t, []string{"COVID", "TB", "PNEUMONIA", "NORMAL"}, Labels)
}

func TestInputGeometry(t *testing.T) {
	h, w, err := inputGeometry([]int64{1, 224, 224, 3})
	require.NoError(t, err)
	require.Equal(t, 224, h)
	require.Equal(t, 224, w)

	// Dynamic batch dimension is fine.
	h, w, err = inputGeometry([]int64{-1, 150, 200, 3})
	require.NoError(t, err)
	require.Equal(t, 150, h)
	require.Equal(t, 200, w)

	_, _, err = inputGeometry([]int64{1, 224, 224})
	require.Error(t, err)

	_, _, err = inputGeometry([]int64{1, 224, 224, 1})
	require.Error(t, err)

	_, _, err = inputGeometry([]int64{1, -1, 224, 3})
	require.Error(t, err)
}

func TestCheckClassCount(t *testing.T) {
	require.NoError(t, checkClassCount([]int64{1, 4}, 4))
	require.NoError(t, checkClassCount([]int64{-1, -1}, 4)) // dynamic output tolerated
	require.Error(t, checkClassCount([]int64{1, 7}, 4))
	require.Error(t, checkClassCount(nil, 4))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")

	var loadErr error = &ImageLoadError{Path: "x.png", Err: cause}
	require.ErrorIs(t, loadErr, cause)
	require.Contains(t, loadErr.Error(), "x.png")

	var infErr error = &InferenceError{Err: cause}
	require.ErrorIs(t, infErr, cause)

	var asLoad *ImageLoadError
	require.True(t, errors.As(loadErr, &asLoad))
	require.Equal(t, "x.png", asLoad.Path)
}
