package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/pipeline"
)

func TestPushDrainRoundTrip(t *testing.T) {
	p := pipeline.New(2, func(j pipeline.Job) (any, error) {
		return j.Payload.(int) * 2, nil
	})
	defer p.Stop()

	p.Push(pipeline.Job{Kind: pipeline.OpGenerate, Coord: 1, Payload: 21})

	var results []pipeline.Result
	require.Eventually(t, func() bool {
		results = append(results, p.Drain()...)
		return len(results) == 1
	}, time.Second, time.Millisecond)

	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].Payload)
	assert.NoError(t, results[0].Err)
}

func TestPendingDecreasesAfterCompletion(t *testing.T) {
	p := pipeline.New(1, func(j pipeline.Job) (any, error) { return nil, nil })
	defer p.Stop()

	p.Push(pipeline.Job{Kind: pipeline.OpMesh})

	require.Eventually(t, func() bool {
		return p.Pending() == 0
	}, time.Second, time.Millisecond)
}

func TestDrainSurfacesWorkErrors(t *testing.T) {
	p := pipeline.New(1, func(j pipeline.Job) (any, error) {
		return nil, assert.AnError
	})
	defer p.Stop()

	p.Push(pipeline.Job{Kind: pipeline.OpGenerate})

	var results []pipeline.Result
	require.Eventually(t, func() bool {
		results = append(results, p.Drain()...)
		return len(results) == 1
	}, time.Second, time.Millisecond)

	assert.Error(t, results[0].Err)
}

func TestPushBatchTagsEveryResultWithTheSameBatchID(t *testing.T) {
	p := pipeline.New(2, func(j pipeline.Job) (any, error) { return nil, nil })
	defer p.Stop()

	id := p.PushBatch([]pipeline.Job{
		{Kind: pipeline.OpGenerate, Coord: 1},
		{Kind: pipeline.OpGenerate, Coord: 2},
		{Kind: pipeline.OpMesh, Coord: 3},
	})
	require.NotEmpty(t, id)

	var results []pipeline.Result
	require.Eventually(t, func() bool {
		results = append(results, p.Drain()...)
		return len(results) == 3
	}, time.Second, time.Millisecond)

	for _, r := range results {
		assert.Equal(t, id, r.Batch)
	}
}

func TestPushBatchRecordsBatchDurationOnceEveryJobCompletes(t *testing.T) {
	p := pipeline.New(2, func(j pipeline.Job) (any, error) { return nil, nil })
	defer p.Stop()

	p.PushBatch([]pipeline.Job{
		{Kind: pipeline.OpGenerate, Coord: 1},
		{Kind: pipeline.OpMesh, Coord: 2},
	})

	require.Eventually(t, func() bool {
		return p.StatsSnapshot().BatchN == 1
	}, time.Second, time.Millisecond)
}

func TestPushBatchOfZeroJobsReturnsIDWithoutHanging(t *testing.T) {
	p := pipeline.New(1, func(j pipeline.Job) (any, error) { return nil, nil })
	defer p.Stop()

	id := p.PushBatch(nil)
	assert.NotEmpty(t, id)
	assert.Equal(t, int64(0), p.StatsSnapshot().BatchN)
}

func TestBareJobsLeaveBatchStatsUntouched(t *testing.T) {
	p := pipeline.New(1, func(j pipeline.Job) (any, error) { return nil, nil })
	defer p.Stop()

	p.Push(pipeline.Job{Kind: pipeline.OpGenerate})

	require.Eventually(t, func() bool {
		return p.Pending() == 0
	}, time.Second, time.Millisecond)

	assert.Equal(t, int64(0), p.StatsSnapshot().BatchN)
}
