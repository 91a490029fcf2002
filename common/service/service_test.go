package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
)

func TestRunCallsFunctions(t *testing.T) {
	var background, tasks, stopped atomic.Int32

	s, err := New(
		WithServiceName("test"),
		WithLogger(null.Logger()),
		WithTaskTicker(5*time.Millisecond),
		WithBackgroundFunc(func(interfaces.Logger) { background.Add(1) }),
		WithTasksFunc(func(interfaces.Logger) { tasks.Add(1) }),
		WithStopFunc(func(interfaces.Logger) { stopped.Add(1) }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return tasks.Load() >= 2 && background.Load() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}

	assert.Equal(t, int32(1), background.Load())
	assert.Equal(t, int32(1), stopped.Load())
}

func TestRunRequiresLogger(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Error(t, s.Run(context.Background()))
}

func TestInvalidTicker(t *testing.T) {
	_, err := New(WithTaskTicker(0))
	assert.Error(t, err)
}
