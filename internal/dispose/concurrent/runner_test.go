package concurrent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanso/internal/dispose"
)

func TestRunAll_RunsEveryJobAndCaches(t *testing.T) {
	cache := NewCache()
	jobs := []Job{
		{FunctionName: "a", Run: func(ctx context.Context) (*dispose.AnalysisResult, error) {
			return &dispose.AnalysisResult{}, nil
		}},
		{FunctionName: "b", Run: func(ctx context.Context) (*dispose.AnalysisResult, error) {
			return nil, errors.New("boom")
		}},
	}

	results := RunAll(context.Background(), jobs, cache, nil)
	require.Len(t, results, 2)

	a, ok := cache.Get("a")
	require.True(t, ok)
	assert.NoError(t, a.Err)
	assert.NotNil(t, a.Analysis)

	b, ok := cache.Get("b")
	require.True(t, ok)
	assert.Error(t, b.Err)
}

func TestRunAll_ResultsPreserveInputOrder(t *testing.T) {
	cache := NewCache()
	jobs := make([]Job, 0, 20)
	for i := 0; i < 20; i++ {
		name := string(rune('a' + i))
		jobs = append(jobs, Job{FunctionName: name, Run: func(ctx context.Context) (*dispose.AnalysisResult, error) {
			return &dispose.AnalysisResult{}, nil
		}})
	}

	results := RunAll(context.Background(), jobs, cache, nil)
	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, jobs[i].FunctionName, r.FunctionName)
	}
}
