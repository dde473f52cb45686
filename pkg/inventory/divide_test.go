package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcreedcmu/paperwork-game/pkg/resource"
)

func TestDivide_HalfRoundsUpTowardHand(t *testing.T) {
	for q := 1; q <= 9; q++ {
		s, _, inbox := newRootWithInbox(t)
		src := s.Create(&Stack{Resource: resource.Paper, Quantity: q})
		_, err := s.Append(inbox, src)
		require.NoError(t, err)

		id, ok, err := s.Divide(FlexAt(inbox, 0), Half)
		require.NoError(t, err)
		require.True(t, ok)

		grabbed, err := s.Stack(id)
		require.NoError(t, err)
		assert.Equal(t, (q+1)/2, grabbed.Quantity, "q=%d", q)

		remaining := 0
		if s.Exists(src) {
			st, err := s.Stack(src)
			require.NoError(t, err)
			remaining = st.Quantity
			assert.Positive(t, remaining)
		}
		assert.Equal(t, q, grabbed.Quantity+remaining, "q=%d conserved", q)

		h, held := s.Hand()
		require.True(t, held)
		assert.Equal(t, id, h)
		require.NoError(t, s.Check())
	}
}

func TestDivide_HalfOfSingletonEmptiesSource(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	src := s.Create(&Stack{Resource: resource.Pencil, Quantity: 1})
	_, err := s.Append(inbox, src)
	require.NoError(t, err)

	id, ok, err := s.Divide(FlexAt(inbox, 0), Half)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, s.Exists(src))
	assert.NotEqual(t, src, id)

	st, err := s.Stack(id)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Quantity)

	n, err := s.ContainerLen(inbox)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, s.Check())
}

func TestDivide_EnvelopeStackAtPositionTwo(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	for i := 0; i < 2; i++ {
		_, err := s.Append(inbox, s.Create(&Letter{}))
		require.NoError(t, err)
	}
	src := s.Create(&Stack{Resource: resource.Envelope, Quantity: 5})
	_, err := s.Append(inbox, src)
	require.NoError(t, err)

	id, ok, err := s.Divide(FlexAt(inbox, 2), Half)
	require.NoError(t, err)
	require.True(t, ok)

	grabbed, err := s.Stack(id)
	require.NoError(t, err)
	assert.Equal(t, 3, grabbed.Quantity)
	st, err := s.Stack(src)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Quantity)

	loc, ok := s.LocationOf(src)
	require.True(t, ok)
	assert.Equal(t, FlexAt(inbox, 2), loc)
	_, ok = s.LocationOf(id)
	assert.False(t, ok, "grabbed stack is in hand, not in a container")
	require.NoError(t, s.Check())
}

func TestDivide_OneMakesDiscreteEnvelope(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	src := s.Create(&Stack{Resource: resource.Envelope, Quantity: 2})
	_, err := s.Append(inbox, src)
	require.NoError(t, err)

	id, ok, err := s.Divide(FlexAt(inbox, 0), One)
	require.NoError(t, err)
	require.True(t, ok)
	env, err := s.Envelope(id)
	require.NoError(t, err)
	assert.Len(t, env.Slots, EnvelopeSize)

	st, err := s.Stack(src)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Quantity)

	_, err = s.Drop(FlexAt(inbox, 1))
	require.NoError(t, err)

	_, ok, err = s.Divide(FlexAt(inbox, 0), One)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, s.Exists(src), "stack deleted when the last unit leaves")
	require.NoError(t, s.Check())
}

func TestDivide_OneWithoutDiscreteFormIsSoft(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	src := s.Create(&Stack{Resource: resource.Paper, Quantity: 3})
	_, err := s.Append(inbox, src)
	require.NoError(t, err)
	before := s.NextID()

	id, ok, err := s.Divide(FlexAt(inbox, 0), One)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, None, id)
	assert.Equal(t, before, s.NextID())

	st, err := s.Stack(src)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Quantity)
	_, held := s.Hand()
	assert.False(t, held)
}

func TestDivide_Failures(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	letter := s.Create(&Letter{})
	_, err := s.Append(inbox, letter)
	require.NoError(t, err)
	stack := s.Create(&Stack{Resource: resource.Paper, Quantity: 2})
	_, err = s.Append(inbox, stack)
	require.NoError(t, err)

	_, _, err = s.Divide(FlexAt(inbox, 0), Half)
	assert.ErrorIs(t, err, ErrNotStack)

	_, _, err = s.Divide(FlexAt(inbox, 5), Half)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	_, err = s.Pickup(FlexAt(inbox, 0))
	require.NoError(t, err)
	_, _, err = s.Divide(FlexAt(inbox, 0), Half)
	assert.ErrorIs(t, err, ErrHandOccupied)
}
