package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls chan string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, scenario string) (*dto.OptimizeInventoryResponse, error) {
	f.calls <- scenario
	if f.err != nil {
		return nil, f.err
	}
	return &dto.OptimizeInventoryResponse{Scenario: scenario}, nil
}

func TestScheduleOptimization_RunsWithScenario(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	runner := &fakeRunner{calls: make(chan string, 4)}
	require.NoError(t, s.ScheduleOptimization(runner, time.Hour, "monsoon", true))
	s.Start()
	defer func() { _ = s.Shutdown() }()

	select {
	case scenario := <-runner.calls:
		assert.Equal(t, "monsoon", scenario)
	case <-time.After(2 * time.Second):
		t.Fatal("la corrida programada no se ejecutó")
	}
}

func TestScheduleOptimization_ErrorDoesNotStopScheduler(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	runner := &fakeRunner{calls: make(chan string, 8), err: errors.New("optimizer caído")}
	require.NoError(t, s.ScheduleOptimization(runner, 50*time.Millisecond, "default", true))
	s.Start()
	defer func() { _ = s.Shutdown() }()

	for i := 0; i < 2; i++ {
		select {
		case <-runner.calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("corrida %d no ocurrió", i+1)
		}
	}
}

func TestScheduleOptimization_RejectsZeroInterval(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Error(t, s.ScheduleOptimization(&fakeRunner{}, 0, "default", false))
}
