package raster

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRowBlocksFillsBuffer(t *testing.T) {
	width, height, blockRows := 4, 10, 3
	data := make([]float64, width*height)

	err := readRowBlocks(data, width, height, blockRows, "loading", func(y0, rows int, buf []float64) error {
		for r := 0; r < rows; r++ {
			for x := 0; x < width; x++ {
				buf[r*width+x] = float64((y0+r)*width + x)
			}
		}
		return nil
	})
	require.NoError(t, err)

	for i, v := range data {
		require.Equal(t, float64(i), v)
	}
}

func TestReadRowBlocksPropagatesFirstError(t *testing.T) {
	width, height, blockRows := 2, 1000, 1
	data := make([]float64, width*height)

	boom := errors.New("driver failure")
	var calls atomic.Int64
	err := readRowBlocks(data, width, height, blockRows, "loading", func(y0, rows int, buf []float64) error {
		calls.Add(1)
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to read rows")
	// The first failure cancels the queued blocks instead of reading them all.
	assert.Less(t, calls.Load(), int64(height))
}
