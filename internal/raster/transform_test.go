package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformerSameEPSGIsNoOp(t *testing.T) {
	tr, err := NewTransformer(32722, 32722)
	require.NoError(t, err)
	defer tr.Close()

	xs := []float64{500000, 500010}
	ys := []float64{8000000, 8000010}
	require.NoError(t, tr.Transform(xs, ys))
	assert.Equal(t, []float64{500000, 500010}, xs)
	assert.Equal(t, []float64{8000000, 8000010}, ys)
}

func TestMaskNoData(t *testing.T) {
	data := []float64{1, -9999, 2, -9999}
	maskNoData(data, -9999)

	assert.Equal(t, 1.0, data[0])
	assert.True(t, math.IsNaN(data[1]))
	assert.Equal(t, 2.0, data[2])
	assert.True(t, math.IsNaN(data[3]))
}
