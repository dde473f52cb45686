package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

func TestFutureRunsOnceWhenDue(t *testing.T) {
	s := newTestState(t)
	s.ScheduleFuture(5, Grant{Resource: resource.Cash, Quantity: 1})

	for tick := 1; tick < 5; tick++ {
		dispatch(t, s, Sleep{})
		assert.Zero(t, s.Resource(resource.Cash), "tick %d", tick)
	}
	dispatch(t, s, Sleep{})
	assert.Equal(t, 1, s.Resource(resource.Cash))
	assert.Empty(t, s.Futures())

	sleepUntil(t, s, 12)
	assert.Equal(t, 1, s.Resource(resource.Cash))
}

func TestFuturesRunInEnqueueOrderDepthFirst(t *testing.T) {
	s := newTestState(t)
	s.ScheduleFuture(1, WithMessage{Msg: "first", Then: WithMessage{Msg: "first-inner", Then: None{}}})
	s.ScheduleFuture(1, WithMessage{Msg: "second", Then: None{}})
	s.ScheduleFuture(2, WithMessage{Msg: "later", Then: None{}})

	dispatch(t, s, Sleep{})

	var msgs []string
	for _, l := range s.Log(0) {
		msgs = append(msgs, l.Msg)
		assert.Equal(t, 1, l.Time)
	}
	assert.Equal(t, []string{"first", "first-inner", "second"}, msgs)
	assert.Equal(t,
		[]string{"sleep", "with-message", "with-message", "none", "with-message", "none"},
		s.Trace())
	require.Len(t, s.Futures(), 1)
	assert.Equal(t, 2, s.Futures()[0].Due)
}

func TestFutureScheduledDuringResolutionWaitsForNextTick(t *testing.T) {
	s := newTestState(t)
	s.ScheduleFuture(1, Schedule{Delay: 0, Then: Grant{Resource: resource.Paper, Quantity: 1}})

	dispatch(t, s, Sleep{})
	assert.Zero(t, s.Resource(resource.Paper), "not replayed in the same pass")
	require.Len(t, s.Futures(), 1)
	assert.Equal(t, 1, s.Futures()[0].Due)

	dispatch(t, s, Sleep{})
	assert.Equal(t, 1, s.Resource(resource.Paper))
}

func TestScheduleRejectsNegativeDelay(t *testing.T) {
	s := newTestState(t)
	err := s.Dispatch(Schedule{Delay: -1, Then: None{}})
	assert.True(t, IsInvariantViolation(err))
}

func TestCollectAndRecycleAlsoResolveFutures(t *testing.T) {
	s := newTestState(t)
	s.ScheduleFuture(1, Grant{Resource: resource.Cash, Quantity: 5})
	s.ScheduleFuture(2, Grant{Resource: resource.Cash, Quantity: 5})

	dispatch(t, s, Collect{})
	assert.Equal(t, 5, s.Resource(resource.Cash))
	dispatch(t, s, Recycle{})
	assert.GreaterOrEqual(t, s.Resource(resource.Cash), 10)
}

func TestNonTimeActionsDoNotResolveFutures(t *testing.T) {
	s := newTestState(t)
	s.ScheduleFuture(0, Grant{Resource: resource.Cash, Quantity: 1})
	dispatch(t, s, EnterSkills{}, Back{}, MenuNext{})
	assert.Zero(t, s.Resource(resource.Cash))
	dispatch(t, s, Sleep{})
	assert.Equal(t, 1, s.Resource(resource.Cash))
}
