package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func splitData(m int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(m, 1, nil)
	y := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		X.Set(i, 0, float64(i))
		y.SetVec(i, float64(i)*10)
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	tests := []struct {
		m, train, test int
		testSize       float64
	}{
		{100, 80, 20, 0.2},
		{11, 8, 3, 0.2},
		{2, 1, 1, 0.2},
		{5, 1, 4, 0.7},
		{3, 2, 1, 0.01},
	}

	for _, tt := range tests {
		X, y := splitData(tt.m)
		s, err := TrainTestSplit(X, y, tt.testSize, 42)
		require.NoError(t, err)
		assert.Equal(t, tt.train, s.YTrain.Len(), "m=%d", tt.m)
		assert.Equal(t, tt.test, s.YTest.Len(), "m=%d", tt.m)
	}
}

func TestTrainTestSplitIsPartitionAndKeepsPairs(t *testing.T) {
	X, y := splitData(50)
	s, err := TrainTestSplit(X, y, 0.2, 7)
	require.NoError(t, err)

	seen := make(map[float64]bool)
	check := func(Xp *mat.Dense, yp *mat.VecDense) {
		for i := 0; i < yp.Len(); i++ {
			x := Xp.At(i, 0)
			assert.Equal(t, x*10, yp.AtVec(i))
			assert.False(t, seen[x], "row %v appears twice", x)
			seen[x] = true
		}
	}
	check(s.XTrain, s.YTrain)
	check(s.XTest, s.YTest)
	assert.Len(t, seen, 50)
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := splitData(30)
	a, _ := TrainTestSplit(X, y, 0.2, 42)
	b, _ := TrainTestSplit(X, y, 0.2, 42)
	c, _ := TrainTestSplit(X, y, 0.2, 43)

	assert.True(t, mat.Equal(a.XTest, b.XTest))
	assert.False(t, mat.Equal(a.XTest, c.XTest))
}

func TestTrainTestSplitErrors(t *testing.T) {
	X, y := splitData(1)
	_, err := TrainTestSplit(X, y, 0.2, 42)
	assert.Error(t, err)

	X, y = splitData(10)
	for _, size := range []float64{0, 1, -0.5, 1.5} {
		_, err = TrainTestSplit(X, y, size, 42)
		assert.Error(t, err, "testSize %v", size)
	}

	_, err = TrainTestSplit(X, mat.NewVecDense(3, nil), 0.2, 42)
	assert.Error(t, err)
}
