package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls atomic.Int32
	ttl   atomic.Int64
	err   error
}

func (p *countingPurger) PurgeIdle(_ context.Context, ttl time.Duration) (int64, error) {
	p.calls.Add(1)
	p.ttl.Store(int64(ttl))
	return 2, p.err
}

func TestPurgeOnce(t *testing.T) {
	p := &countingPurger{}
	PurgeOnce(context.Background(), 2*time.Hour, p)
	assert.EqualValues(t, 1, p.calls.Load())
	assert.Equal(t, int64(2*time.Hour), p.ttl.Load())

	p.err = errors.New("db down")
	PurgeOnce(context.Background(), time.Hour, p)
	assert.EqualValues(t, 2, p.calls.Load())
}

func TestStartCronJob(t *testing.T) {
	_, err := StartCronJob("every ten minutes", time.Hour, &countingPurger{})
	assert.Error(t, err)

	p := &countingPurger{}
	c, err := StartCronJob("@every 1s", time.Hour, p)
	require.NoError(t, err)
	defer c.Stop()
	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
