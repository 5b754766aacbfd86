package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine/mocks"
)

func TestCancelRequiresLogin(t *testing.T) {
	eng := newTestEngine(new(mocks.MockStore))

	err := eng.Cancel(context.Background(), engine.NewSession(), 1)

	assert.ErrorIs(t, err, engine.ErrNotLoggedIn)
}

func TestCancelRefundsAndReleasesSeats(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("ReservationItinerary", mock.Anything, int64(42), "alice").
		Return(&database.ItineraryRow{ID: 7, DestFID: seattleBoston.FID, TotalPrice: 141}, nil)
	store.On("DecrementBookings", mock.Anything, int64(7), false).Return(nil)
	store.On("CreditUserBalance", mock.Anything, "alice", 141).Return(nil)
	store.On("DeleteReservation", mock.Anything, int64(42)).Return(nil)
	eng := newTestEngine(store)

	require.NoError(t, eng.Cancel(context.Background(), loggedIn("alice"), 42))
	store.AssertExpectations(t)
}

func TestCancelTwoLegReleasesBothCounters(t *testing.T) {
	intFID := seattleSF.FID

	store := new(mocks.MockStore)
	store.On("ReservationItinerary", mock.Anything, int64(42), "alice").
		Return(&database.ItineraryRow{ID: 9, IntFID: &intFID, DestFID: sfBoston.FID, TotalPrice: 307}, nil)
	store.On("DecrementBookings", mock.Anything, int64(9), true).Return(nil)
	store.On("CreditUserBalance", mock.Anything, "alice", 307).Return(nil)
	store.On("DeleteReservation", mock.Anything, int64(42)).Return(nil)
	eng := newTestEngine(store)

	require.NoError(t, eng.Cancel(context.Background(), loggedIn("alice"), 42))
	store.AssertExpectations(t)
}

func TestCancelUnknownReservation(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("ReservationItinerary", mock.Anything, int64(42), "alice").
		Return(nil, database.ErrNotFound)
	eng := newTestEngine(store)

	err := eng.Cancel(context.Background(), loggedIn("alice"), 42)

	var failed *engine.CancelFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, int64(42), failed.ReservationID)
	store.AssertNotCalled(t, "CreditUserBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelStoreErrorKeepsReservation(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("ReservationItinerary", mock.Anything, int64(42), "alice").
		Return(&database.ItineraryRow{ID: 7, DestFID: seattleBoston.FID, TotalPrice: 141}, nil)
	store.On("DecrementBookings", mock.Anything, int64(7), false).
		Return(errors.New("connection reset"))
	eng := newTestEngine(store)

	err := eng.Cancel(context.Background(), loggedIn("alice"), 42)

	var failed *engine.CancelFailedError
	assert.ErrorAs(t, err, &failed)
	store.AssertNotCalled(t, "DeleteReservation", mock.Anything, mock.Anything)
}
