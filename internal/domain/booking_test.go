package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	shopActor = Actor{AccountID: 10, Role: RoleShop}
	rider     = Actor{AccountID: 77, Role: RoleRider}
)

func flagSlice(f LifecycleFlags) []bool {
	return []bool{
		f.IsAcceptedByShop,
		f.PickUpFromClient,
		f.HasStartedLaundry,
		f.IsReadyForDelivery,
		f.PickUpFromShop,
		f.IsOutForDelivery,
		f.ReceivedByClient,
		f.TransactionCompleted,
	}
}

func assertPrefix(t *testing.T, b *Booking) {
	t.Helper()
	seenFalse := false
	for i, v := range flagSlice(b.Flags()) {
		if !v {
			seenFalse = true
			continue
		}
		assert.False(t, seenFalse, "flag %d is set after an unset flag", i+1)
	}
}

func TestBooking_AdvanceThroughAllStages(t *testing.T) {
	b := &Booking{}
	assert.True(t, b.IsPending())
	assertPrefix(t, b)

	for _, stage := range Stages() {
		next, ok := b.NextStage()
		require.True(t, ok)
		require.Equal(t, stage, next)

		require.NoError(t, b.Advance(stage, rider, testNow))
		assert.Equal(t, stage, b.Stage)
		assertPrefix(t, b)
	}

	assert.True(t, b.IsCompleted())
	assert.Equal(t, ClassCompleted, b.Class())
	require.NotNil(t, b.CompletedAt)
	require.NotNil(t, b.DeliveryDate)
	require.NotNil(t, b.PickupRiderID)
	require.NotNil(t, b.DeliveryRiderID)
	assert.Equal(t, int64(77), *b.PickupRiderID)

	_, ok := b.NextStage()
	assert.False(t, ok)
}

func TestBooking_AdvanceRejectsSkipAndRepeat(t *testing.T) {
	b := &Booking{}

	assert.ErrorIs(t, b.Advance(StageLaundryStarted, shopActor, testNow), ErrStageOutOfOrder)
	assert.Equal(t, StageNone, b.Stage)

	require.NoError(t, b.Advance(StageAcceptedByShop, shopActor, testNow))
	assert.ErrorIs(t, b.Advance(StageAcceptedByShop, shopActor, testNow), ErrStageOutOfOrder)
	assert.ErrorIs(t, b.Advance(StageNone, shopActor, testNow), ErrStageOutOfOrder)
	assert.Equal(t, StageAcceptedByShop, b.Stage)
}

func TestBooking_CancelThenAdvance(t *testing.T) {
	b := &Booking{Stage: StageReadyForDelivery}

	require.NoError(t, b.Cancel(testNow))
	assert.Equal(t, ClassCanceled, b.Class())
	assert.False(t, b.IsPending())

	assert.ErrorIs(t, b.Advance(StagePickedUpFromShop, rider, testNow), ErrBookingCanceled)
	assert.Equal(t, StageReadyForDelivery, b.Stage)
}

func TestBooking_CancelTwiceKeepsFirstCancellation(t *testing.T) {
	b := &Booking{Stage: StageAcceptedByShop}

	require.NoError(t, b.Cancel(testNow))
	require.NoError(t, b.Cancel(testNow.Add(time.Hour)))

	assert.True(t, b.IsCanceled)
	require.NotNil(t, b.CanceledAt)
	assert.Equal(t, testNow, *b.CanceledAt)
	assert.Equal(t, testNow, b.UpdatedAt)
}

func TestBooking_CompleteThenCancel(t *testing.T) {
	b := &Booking{Stage: StageReceivedByClient}

	require.NoError(t, b.Advance(FinalStage, shopActor, testNow))
	assert.ErrorIs(t, b.Cancel(testNow), ErrBookingCompleted)
	assert.False(t, b.IsCanceled)
}

func TestBooking_ShopPickupDoesNotAssignRider(t *testing.T) {
	b := &Booking{Stage: StageAcceptedByShop}

	require.NoError(t, b.Advance(StagePickedUpFromClient, shopActor, testNow))
	assert.Nil(t, b.PickupRiderID)
}

func TestParseStage(t *testing.T) {
	for _, s := range Stages() {
		parsed, err := ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStage("none")
	assert.ErrorIs(t, err, ErrUnknownStage)

	_, err = ParseStage("washed")
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("week")
	require.NoError(t, err)
	assert.Equal(t, GranularityWeek, g)

	_, err = ParseGranularity("year")
	assert.Error(t, err)
}
