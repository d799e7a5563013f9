package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tol = 1e-12

func TestRank(t *testing.T) {

	type test struct {
		m    *Matrix[float64]
		rank int
	}

	tests := map[string]test{
		"full": {
			m: NewMatrix(3, 2, []float64{
				1, 0,
				0, 1,
				1, 1,
			}),
			rank: 2,
		},
		"duplicate-column": {
			m: NewMatrix(3, 2, []float64{
				1, 1,
				2, 2,
				3, 3,
			}),
			rank: 1,
		},
		"zero": {
			m:    NewMatrix[float64](3, 2, nil),
			rank: 0,
		},
		"empty": {
			m:    NewMatrix[float64](3, 0, nil),
			rank: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, err := Rank(tt.m, tol)
			require.NoError(t, err)
			assert.Equal(t, tt.rank, r)
		})
	}
}

func TestPseudoInverse(t *testing.T) {

	t.Run("full-rank", func(t *testing.T) {
		m := NewMatrix(3, 2, []float64{
			1, 2,
			3, 4,
			5, 6,
		})
		pinv, err := PseudoInverse(m, tol)
		require.NoError(t, err)
		r, c := pinv.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 3, c)
		// pinv(A) * A = I for full column rank
		id := pinv.Mul(m)
		assert.True(t, floats.EqualApprox(id.Dense().RawMatrix().Data, []float64{1, 0, 0, 1}, 1e-10))
	})

	t.Run("rank-deficient", func(t *testing.T) {
		m := NewMatrix(3, 2, []float64{
			1, 2,
			2, 4,
			3, 6,
		})
		pinv, err := PseudoInverse(m, tol)
		require.NoError(t, err)
		// A * pinv(A) * A = A
		back := m.Mul(pinv).Mul(m)
		assert.True(t, floats.EqualApprox(back.data, m.data, 1e-10))
	})

	t.Run("zero-column", func(t *testing.T) {
		m := NewMatrix(3, 2, []float64{
			1, 0,
			2, 0,
			3, 0,
		})
		_, err := PseudoInverse(m, tol)
		assert.ErrorIs(t, err, SingularMatrixErr)
	})

	t.Run("empty", func(t *testing.T) {
		pinv, err := PseudoInverse(NewMatrix[float64](4, 0, nil), tol)
		require.NoError(t, err)
		r, c := pinv.Dims()
		assert.Equal(t, 0, r)
		assert.Equal(t, 4, c)
	})
}

func TestProjector(t *testing.T) {

	w := NewMatrix(4, 1, []float64{1, 1, 1, 1})
	p, err := Projector(w, tol)
	require.NoError(t, err)

	// projecting onto the ones vector replaces each element with the mean
	y := Vector[float64]{1, 2, 3, 6}
	assert.True(t, floats.EqualApprox(p.MulVec(y).Float64(), []float64{3, 3, 3, 3}, 1e-12))

	// idempotent
	pp := p.Mul(p)
	assert.True(t, floats.EqualApprox(pp.data, p.data, 1e-12))

	empty, err := Projector(NewMatrix[float64](4, 0, nil), tol)
	require.NoError(t, err)
	assert.Equal(t, Vector[float64]{0, 0, 0, 0}, empty.MulVec(y))
}

func TestInverse(t *testing.T) {

	m := NewMatrix(2, 2, []float32{
		4, 7,
		2, 6,
	})
	inv, err := Inverse(m)
	require.NoError(t, err)
	id := m.Mul(inv)
	assert.InDelta(t, 1, id.At(0, 0), 1e-5)
	assert.InDelta(t, 0, id.At(0, 1), 1e-5)
	assert.InDelta(t, 0, id.At(1, 0), 1e-5)
	assert.InDelta(t, 1, id.At(1, 1), 1e-5)

	_, err = Inverse(NewMatrix(2, 2, []float64{1, 2, 2, 4}))
	assert.ErrorIs(t, err, SingularMatrixErr)

	_, err = Inverse(NewMatrix[float64](2, 3, nil))
	assert.ErrorIs(t, err, InvalidDimensionErr)
}

func TestNonFinite(t *testing.T) {

	type test struct {
		m       *Matrix[float64]
		element string
	}

	tests := map[string]test{
		"nan": {
			m:       NewMatrix(2, 2, []float64{1, 2, math.NaN(), 4}),
			element: "element (1,0)",
		},
		"inf": {
			m:       NewMatrix(2, 2, []float64{1, math.Inf(1), 3, 4}),
			element: "element (0,1)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.m.CheckFinite()
			require.ErrorIs(t, err, InvalidValueErr)
			assert.Contains(t, err.Error(), tt.element)

			_, err = Rank(tt.m, tol)
			assert.ErrorIs(t, err, InvalidValueErr)
			_, err = PseudoInverse(tt.m, tol)
			assert.ErrorIs(t, err, InvalidValueErr)
			_, err = Inverse(tt.m)
			assert.ErrorIs(t, err, InvalidValueErr)
		})
	}

	assert.NoError(t, NewMatrix(2, 1, []float64{1, 2}).CheckFinite())
	err := Vector[float64]{1, math.NaN()}.CheckFinite()
	require.ErrorIs(t, err, InvalidValueErr)
	assert.Contains(t, err.Error(), "element 1")
}
