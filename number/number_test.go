package number

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSqrt(t *testing.T) {

	type test struct {
		input  float64
		output float64
	}

	tests := map[string]test{
		"0": {
			input:  0,
			output: 0,
		},
		"1": {
			input:  1,
			output: 1,
		},
		"16": {
			input:  16,
			output: 4,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, Sqrt(tt.input))
			assert.Equal(t, float32(tt.output), Sqrt(float32(tt.input)))
		})
	}

}

func TestAbsPow(t *testing.T) {
	assert.Equal(t, 2.5, Abs(-2.5))
	assert.Equal(t, float32(2.5), Abs(float32(-2.5)))
	assert.Equal(t, 9.0, Pow(3.0, 2.0))
	assert.Equal(t, float32(8), Pow(float32(2), float32(3)))
}

func TestFinite(t *testing.T) {
	assert.True(t, IsFinite(1.0))
	assert.False(t, IsFinite(Inf[float64](1)))
	assert.False(t, IsFinite(Inf[float32](-1)))
	assert.False(t, IsFinite(NaN[float64]()))
	assert.True(t, math.IsInf(Float64(Inf[float32](-1)), -1))
	assert.Equal(t, float32(0.5), From[float32](0.5))
}
