package preprocessing

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/fx-xf/bfte/pkg/errors"
)

// Split holds a train/test partition of a dataset.
type Split struct {
	XTrain *mat.Dense
	YTrain *mat.VecDense
	XTest  *mat.Dense
	YTest  *mat.VecDense
}

// TrainTestSplit shuffles the rows of X and y with a PCG source seeded by
// seed and puts ceil(m*testSize) of them in the test partition. The same
// seed always yields the same partition.
func TrainTestSplit(X mat.Matrix, y mat.Vector, testSize float64, seed uint64) (*Split, error) {
	const op = "TrainTestSplit"

	m, n := X.Dims()
	if y.Len() != m {
		return nil, errors.NewDimensionError(op, m, y.Len(), 0)
	}
	if m < 2 {
		return nil, errors.NewValueError(op, "need at least 2 rows to split")
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	nTest := int(math.Ceil(float64(m) * testSize))
	if nTest >= m {
		nTest = m - 1
	}
	nTrain := m - nTest

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(m)

	s := &Split{
		XTrain: mat.NewDense(nTrain, n, nil),
		YTrain: mat.NewVecDense(nTrain, nil),
		XTest:  mat.NewDense(nTest, n, nil),
		YTest:  mat.NewVecDense(nTest, nil),
	}
	for i, src := range perm {
		dstX, dstY, row := s.XTrain, s.YTrain, i
		if i >= nTrain {
			dstX, dstY, row = s.XTest, s.YTest, i-nTrain
		}
		for j := 0; j < n; j++ {
			dstX.Set(row, j, X.At(src, j))
		}
		dstY.SetVec(row, y.AtVec(src))
	}
	return s, nil
}
