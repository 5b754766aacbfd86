package engine

import (
	"context"
	"errors"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// Book reserves the itinerary at index in the session's last search results
// and returns the store-assigned reservation id.
//
// The whole transaction body retries under a fresh transaction on store
// conflicts, so the same-day and fullness checks are re-evaluated against
// current state each attempt. That, plus serializable isolation, is what
// prevents two sessions from both taking the last seat.
func (e *Engine) Book(ctx context.Context, sess *Session, index int) (int64, error) {
	if !sess.LoggedIn {
		return 0, ErrNotLoggedIn
	}
	it, ok := sess.searchResult(index)
	if !ok {
		return 0, &NoSuchItineraryError{Index: index}
	}
	for _, leg := range it.Legs {
		if leg.Capacity == 0 {
			return 0, ErrBookingFailed
		}
	}

	var intFID *int64
	destFID := it.Legs[0].FID
	if len(it.Legs) == 2 {
		fid := it.Legs[0].FID
		intFID = &fid
		destFID = it.Legs[1].FID
	}

	var resID int64
	err := e.tx.Serializable(ctx, func(ctx context.Context) error {
		day := it.Legs[0].DayOfMonth

		taken, err := e.store.HasReservationOnDay(ctx, sess.Username, day)
		if err != nil {
			return err
		}
		if taken {
			return ErrSameDayBooking
		}

		var itineraryID int64
		row, err := e.store.FindItineraryByShape(ctx, intFID, destFID)
		switch {
		case err == nil:
			full, err := e.itineraryFull(ctx, it, row)
			if err != nil {
				return err
			}
			if full {
				return ErrBookingFailed
			}
			if err := e.store.IncrementBookings(ctx, row.ID, len(it.Legs) == 2); err != nil {
				return err
			}
			itineraryID = row.ID
		case errors.Is(err, database.ErrNotFound):
			itineraryID, err = e.store.InsertItinerary(ctx, intFID, destFID, day, it.TotalPrice())
			if err != nil {
				return err
			}
		default:
			return err
		}

		resID, err = e.store.InsertReservation(ctx, sess.Username, itineraryID)
		return err
	})

	switch {
	case err == nil:
		e.log.Info().Str("username", sess.Username).Int64("reservation", resID).Msg("booked itinerary")
		return resID, nil
	case errors.Is(err, ErrSameDayBooking), errors.Is(err, ErrBookingFailed):
		return 0, err
	default:
		e.log.Debug().Str("username", sess.Username).Int("index", index).Err(err).Msg("booking failed")
		return 0, ErrBookingFailed
	}
}

// itineraryFull reports whether the persisted itinerary has no seat left on
// any of its legs. Capacities are re-read inside the transaction so a
// retried attempt sees current state.
func (e *Engine) itineraryFull(ctx context.Context, it Itinerary, row *database.ItineraryRow) (bool, error) {
	destCapacity, err := e.store.FlightCapacity(ctx, it.Legs[len(it.Legs)-1].FID)
	if err != nil {
		return false, err
	}
	if len(it.Legs) == 1 {
		return row.BookingsDest == destCapacity, nil
	}

	intCapacity, err := e.store.FlightCapacity(ctx, it.Legs[0].FID)
	if err != nil {
		return false, err
	}
	return row.BookingsInt == intCapacity || row.BookingsDest == destCapacity, nil
}
