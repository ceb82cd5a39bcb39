package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(TransactionParked, TransactionCompleted))
	assert.True(t, CanTransition(TransactionParked, TransactionCancelled))
	assert.False(t, CanTransition(TransactionCompleted, TransactionParked))
	assert.False(t, CanTransition(TransactionCancelled, TransactionCompleted))

	// self transitions are rejected, terminal states included
	assert.False(t, CanTransition(TransactionParked, TransactionParked))
	assert.False(t, CanTransition(TransactionCompleted, TransactionCompleted))
	assert.False(t, CanTransition(TransactionCancelled, TransactionCancelled))
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	tx := &ParkingTransaction{Status: TransactionParked, EntryTime: now.Add(-90 * time.Minute)}
	require.NoError(t, tx.ApplyTransition(TransactionCompleted, now))
	assert.Equal(t, TransactionCompleted, tx.Status)
	require.NotNil(t, tx.ExitTime)
	assert.Equal(t, now, *tx.ExitTime)

	// terminal state stays terminal, re-completing included
	assert.Error(t, tx.ApplyTransition(TransactionCancelled, now))
	assert.Error(t, tx.ApplyTransition(TransactionCompleted, now))
	assert.Equal(t, TransactionCompleted, tx.Status)
}

func TestCurrentMembership(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("NoMemberships", func(t *testing.T) {
		assert.Nil(t, CurrentMembership(nil, day(10)))
	})

	t.Run("OutsideWindow", func(t *testing.T) {
		members := []Membership{{StartDate: day(1), EndDate: day(5)}}
		assert.Nil(t, CurrentMembership(members, day(10)))
	})

	t.Run("InclusiveBounds", func(t *testing.T) {
		members := []Membership{{StartDate: day(1), EndDate: day(5), Kind: "monthly"}}
		assert.NotNil(t, CurrentMembership(members, day(1)))
		assert.NotNil(t, CurrentMembership(members, day(5)))
	})

	t.Run("OverlapPicksLatestEndDate", func(t *testing.T) {
		members := []Membership{
			{StartDate: day(1), EndDate: day(15), Kind: "monthly"},
			{StartDate: day(5), EndDate: day(25), Kind: "quarterly"},
			{StartDate: day(8), EndDate: day(12), Kind: "trial"},
		}
		current := CurrentMembership(members, day(10))
		require.NotNil(t, current)
		assert.Equal(t, "quarterly", current.Kind)
	})
}
