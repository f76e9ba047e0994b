package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryItemOnce(t *testing.T) {
	for _, items := range []int{1, 7, 1000, 12345} {
		hits := make([]int32, items)
		Parallelize(items, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equalf(t, int32(1), h, "items=%d index=%d", items, i)
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) { called = true })
	assert.False(t, called)
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	var calls int
	var gotStart, gotEnd int
	ParallelizeWithThreshold(10, DefaultThreshold, func(start, end int) {
		calls++
		gotStart, gotEnd = start, end
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, gotStart)
	assert.Equal(t, 10, gotEnd)
}

func TestParallelizeWithThresholdParallel(t *testing.T) {
	var total int64
	ParallelizeWithThreshold(5000, DefaultThreshold, func(start, end int) {
		atomic.AddInt64(&total, int64(end-start))
	})
	assert.Equal(t, int64(5000), total)
}
