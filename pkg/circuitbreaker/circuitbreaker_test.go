package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("service unavailable")

// clock 可手动推进的时钟
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *clock) {
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("test", cfg)
	cb.now = clk.Now
	cb.mu.Lock()
	cb.toNewGeneration(clk.Now())
	cb.mu.Unlock()
	return cb, clk
}

func fail() error    { return errUnavailable }
func succeed() error { return nil }

func TestCircuitBreaker_Closed(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)

	// 业务错误原样返回
	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_Trip(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(fail)
	}
	require.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断时不应调用实际函数")
}

func TestCircuitBreaker_ConsecutiveFailuresReset(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	require.NoError(t, cb.Execute(succeed))
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cfg := Config{Timeout: 30 * time.Second, MaxRequests: 1}

	t.Run("探测成功恢复", func(t *testing.T) {
		cb, clk := newTestBreaker(cfg)
		for i := 0; i < 5; i++ {
			_ = cb.Execute(fail)
		}
		clk.Advance(31 * time.Second)
		require.Equal(t, StateHalfOpen, cb.State())

		require.NoError(t, cb.Execute(succeed))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("探测失败重新熔断", func(t *testing.T) {
		cb, clk := newTestBreaker(cfg)
		for i := 0; i < 5; i++ {
			_ = cb.Execute(fail)
		}
		clk.Advance(31 * time.Second)

		_ = cb.Execute(fail)
		assert.Equal(t, StateOpen, cb.State())
	})

	t.Run("探测名额已满快速失败", func(t *testing.T) {
		cb, clk := newTestBreaker(cfg)
		for i := 0; i < 5; i++ {
			_ = cb.Execute(fail)
		}
		clk.Advance(31 * time.Second)

		// 第一个探测请求未返回时，第二个请求被拒绝
		err := cb.Execute(func() error {
			return cb.Execute(succeed)
		})
		assert.ErrorIs(t, err, ErrOpenState)
	})
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clk := newTestBreaker(Config{Interval: 10 * time.Second})

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	clk.Advance(11 * time.Second)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().TotalFailures)
}

func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	errBusiness := errors.New("extension not allowed")
	cb, _ := newTestBreaker(Config{
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errBusiness) },
	})

	for i := 0; i < 10; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errBusiness }), errBusiness)
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	cb, clk := newTestBreaker(Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 2 },
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clk.Advance(time.Minute)
	_ = cb.Execute(succeed)

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCounts_FailureRate(t *testing.T) {
	assert.Zero(t, Counts{}.FailureRate())
	assert.InDelta(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRate(), 1e-9)
}
