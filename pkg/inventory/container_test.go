package inventory

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRootWithInbox(t *testing.T) (*Store, ItemID, ItemID) {
	t.Helper()
	s := NewStore()
	root := s.Create(&FlexContainer{})
	inbox := s.Create(&FlexContainer{})
	_, err := s.Append(root, inbox)
	require.NoError(t, err)
	return s, root, inbox
}

func TestRemoveAt_FlexShiftsLaterItemsDown(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	l1 := s.Create(&Letter{})
	l2 := s.Create(&Letter{})
	l3 := s.Create(&Letter{})
	for _, id := range []ItemID{l1, l2, l3} {
		_, err := s.Append(inbox, id)
		require.NoError(t, err)
	}

	removed, err := s.RemoveAt(FlexAt(inbox, 0))
	require.NoError(t, err)
	assert.Equal(t, l1, removed)

	_, ok := s.LocationOf(l1)
	assert.False(t, ok)
	loc, _ := s.LocationOf(l2)
	assert.Equal(t, FlexAt(inbox, 0), loc)
	loc, _ = s.LocationOf(l3)
	assert.Equal(t, FlexAt(inbox, 1), loc)
	require.NoError(t, s.Check())
}

func TestRemoveAt_RigidLeavesHole(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	env := s.Create(NewEnvelope(3))
	_, err := s.Append(inbox, env)
	require.NoError(t, err)

	l1 := s.Create(&Letter{})
	l2 := s.Create(&Letter{})
	require.NoError(t, s.InsertAt(l1, RigidAt(env, 0)))
	require.NoError(t, s.InsertAt(l2, RigidAt(env, 1)))

	removed, err := s.RemoveAt(RigidAt(env, 0))
	require.NoError(t, err)
	assert.Equal(t, l1, removed)

	_, ok := s.LocationOf(l1)
	assert.False(t, ok)
	loc, _ := s.LocationOf(l2)
	assert.Equal(t, RigidAt(env, 1), loc)

	slots, err := s.Slots(env)
	require.NoError(t, err)
	assert.Equal(t, []ItemID{None, l2, None}, slots)

	_, err = s.RemoveAt(RigidAt(env, 0))
	assert.ErrorIs(t, err, ErrSlotEmpty)
	require.NoError(t, s.Check())
}

func TestInsertAt_Failures(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	env := s.Create(NewEnvelope(2))
	_, err := s.Append(inbox, env)
	require.NoError(t, err)
	a := s.Create(&Letter{})
	b := s.Create(&Letter{})
	require.NoError(t, s.InsertAt(a, RigidAt(env, 0)))

	assert.ErrorIs(t, s.InsertAt(b, RigidAt(env, 0)), ErrSlotOccupied)
	assert.ErrorIs(t, s.InsertAt(b, RigidAt(env, 2)), ErrOutOfRange)
	assert.ErrorIs(t, s.InsertAt(b, FlexAt(inbox, 5)), ErrOutOfRange)
	assert.ErrorIs(t, s.InsertAt(a, FlexAt(inbox, 0)), ErrAlreadyLocated)
	loose := s.Create(NewEnvelope(1))
	assert.ErrorIs(t, s.InsertAt(loose, RigidAt(loose, 0)), ErrContainerCycle)
	assert.ErrorIs(t, s.InsertAt(ItemID(99), FlexAt(inbox, 0)), ErrNotFound)
	assert.ErrorIs(t, s.InsertAt(b, FlexAt(a, 0)), ErrWrongVariant)
	require.NoError(t, s.Check())
}

func TestInsertAt_FlexShiftsLaterItemsUp(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	ids := make([]ItemID, 3)
	for i := range ids {
		ids[i] = s.Create(&Letter{})
		_, err := s.Append(inbox, ids[i])
		require.NoError(t, err)
	}
	x := s.Create(&Letter{Body: "x"})
	require.NoError(t, s.InsertAt(x, FlexAt(inbox, 1)))

	got, err := s.Slots(inbox)
	require.NoError(t, err)
	assert.Equal(t, []ItemID{ids[0], x, ids[1], ids[2]}, got)
	for ix, id := range got {
		loc, ok := s.LocationOf(id)
		require.True(t, ok)
		assert.Equal(t, FlexAt(inbox, ix), loc)
	}
}

func TestInsertThenRemoveSamePositionIsIdentity(t *testing.T) {
	for n := 0; n < 5; n++ {
		for i := 0; i <= n; i++ {
			s, _, inbox := newRootWithInbox(t)
			for k := 0; k < n; k++ {
				_, err := s.Append(inbox, s.Create(&Letter{}))
				require.NoError(t, err)
			}
			before, err := s.Slots(inbox)
			require.NoError(t, err)

			x := s.Create(&Letter{})
			require.NoError(t, s.InsertAt(x, FlexAt(inbox, i)))
			removed, err := s.RemoveAt(FlexAt(inbox, i))
			require.NoError(t, err)
			assert.Equal(t, x, removed)

			after, err := s.Slots(inbox)
			require.NoError(t, err)
			assert.Equal(t, before, after, "n=%d i=%d", n, i)
			require.NoError(t, s.Check())
		}
	}
}

func TestDeleteAt_DestroysContents(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	env := s.Create(NewEnvelope(3))
	_, err := s.Append(inbox, env)
	require.NoError(t, err)
	letter := s.Create(&Letter{})
	require.NoError(t, s.InsertAt(letter, RigidAt(env, 2)))

	require.NoError(t, s.DeleteAt(FlexAt(inbox, 0)))
	assert.False(t, s.Exists(env))
	assert.False(t, s.Exists(letter))
	_, ok := s.LocationOf(letter)
	assert.False(t, ok)
	require.NoError(t, s.Check())
}

func TestItemAt(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	_, _, err := s.ItemAt(FlexAt(inbox, 0))
	assert.ErrorIs(t, err, ErrSlotEmpty)

	id := s.Create(&Letter{Body: "hello"})
	_, err = s.Append(inbox, id)
	require.NoError(t, err)

	got, p, err := s.ItemAt(FlexAt(inbox, 0))
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "hello", p.(*Letter).Body)
}

// TestRandomMutationsKeepIndexConsistent drives the store through random
// inserts, removals and deletions and checks the index after every step.
func TestRandomMutationsKeepIndexConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	s, root, inbox := newRootWithInbox(t)
	outbox := s.Create(&FlexContainer{})
	_, err := s.Append(root, outbox)
	require.NoError(t, err)
	env := s.Create(NewEnvelope(4))
	_, err = s.Append(inbox, env)
	require.NoError(t, err)

	var loose []ItemID
	flexes := []ItemID{inbox, outbox}

	for step := 0; step < 500; step++ {
		switch rng.IntN(4) {
		case 0:
			loose = append(loose, s.Create(&Letter{}))
		case 1:
			if len(loose) == 0 {
				continue
			}
			id := loose[len(loose)-1]
			c := flexes[rng.IntN(len(flexes))]
			n, err := s.ContainerLen(c)
			require.NoError(t, err)
			if rng.IntN(3) == 0 {
				slot := rng.IntN(4)
				if err := s.InsertAt(id, RigidAt(env, slot)); err != nil {
					require.ErrorIs(t, err, ErrSlotOccupied)
					continue
				}
			} else {
				require.NoError(t, s.InsertAt(id, FlexAt(c, rng.IntN(n+1))))
			}
			loose = loose[:len(loose)-1]
		case 2:
			c := flexes[rng.IntN(len(flexes))]
			n, err := s.ContainerLen(c)
			require.NoError(t, err)
			if n == 0 {
				continue
			}
			loc := FlexAt(c, rng.IntN(n))
			if id, _, _ := s.ItemAt(loc); id == env {
				continue
			}
			id, err := s.RemoveAt(loc)
			require.NoError(t, err)
			loose = append(loose, id)
		case 3:
			loc := RigidAt(env, rng.IntN(4))
			if err := s.DeleteAt(loc); err != nil {
				require.ErrorIs(t, err, ErrSlotEmpty)
			}
		}
		require.NoError(t, s.Check(), "step %d", step)
	}
}

func TestSlots_EmptyFlexIsNonNil(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	before, err := s.Slots(inbox)
	require.NoError(t, err)
	assert.NotNil(t, before)
	assert.Empty(t, before)

	x := s.Create(&Letter{})
	require.NoError(t, s.InsertAt(x, FlexAt(inbox, 0)))
	_, err = s.RemoveAt(FlexAt(inbox, 0))
	require.NoError(t, err)

	after, err := s.Slots(inbox)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDestroy(t *testing.T) {
	s, _, inbox := newRootWithInbox(t)
	env := s.Create(NewEnvelope(2))
	letter := s.Create(&Letter{})
	require.NoError(t, s.InsertAt(letter, RigidAt(env, 1)))
	_, err := s.Append(inbox, env)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Destroy(env), ErrAlreadyLocated)

	_, err = s.RemoveAt(FlexAt(inbox, 0))
	require.NoError(t, err)
	require.NoError(t, s.Destroy(env))
	assert.False(t, s.Exists(env))
	assert.False(t, s.Exists(letter))
	require.NoError(t, s.Check())

	assert.ErrorIs(t, s.Destroy(env), ErrNotFound)
}
