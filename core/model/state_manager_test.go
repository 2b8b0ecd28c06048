package model

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	nFeatures, nSamples := s.GetDimensions()
	assert.Zero(t, nFeatures)
	assert.Zero(t, nSamples)

	require.NoError(t, s.WithStateMut(func(ModelState) (ModelState, error) {
		return ModelState{Fitted: true, NFeatures: 1, NSamples: 10}, nil
	}))
	assert.True(t, s.IsFitted())
	require.NoError(t, s.WithState(func(st ModelState) error {
		assert.Equal(t, ModelState{Fitted: true, NFeatures: 1, NSamples: 10}, st)
		return nil
	}))
}

func TestWithStateMutKeepsStateOnError(t *testing.T) {
	s := NewStateManager()
	require.NoError(t, s.WithStateMut(func(ModelState) (ModelState, error) {
		return ModelState{Fitted: true, NFeatures: 1, NSamples: 5}, nil
	}))

	err := s.WithStateMut(func(ModelState) (ModelState, error) {
		return ModelState{Fitted: true, NFeatures: 3, NSamples: 9}, errors.New("boom")
	})
	require.Error(t, err)

	nFeatures, nSamples := s.GetDimensions()
	assert.Equal(t, 1, nFeatures)
	assert.Equal(t, 5, nSamples)
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = s.WithStateMut(func(ModelState) (ModelState, error) {
				return ModelState{Fitted: true, NFeatures: n, NSamples: n}, nil
			})
		}(i + 1)
		go func() {
			defer wg.Done()
			_ = s.WithState(func(st ModelState) error {
				if st.Fitted {
					assert.Equal(t, st.NFeatures, st.NSamples)
				}
				return nil
			})
		}()
	}
	wg.Wait()
	assert.True(t, s.IsFitted())
}
