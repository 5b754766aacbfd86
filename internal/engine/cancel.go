package engine

import (
	"context"
)

// Cancel removes the reservation resID owned by the session user: the
// booking counters on its itinerary are decremented, the full price is
// refunded to the user's balance, and the reservation row is deleted. The
// retired id is never reused. A missing reservation and one owned by another
// user fail identically.
func (e *Engine) Cancel(ctx context.Context, sess *Session, resID int64) error {
	if !sess.LoggedIn {
		return ErrNotLoggedIn
	}

	err := e.tx.Serializable(ctx, func(ctx context.Context) error {
		itinerary, err := e.store.ReservationItinerary(ctx, resID, sess.Username)
		if err != nil {
			return err
		}

		if err := e.store.DecrementBookings(ctx, itinerary.ID, itinerary.IntFID != nil); err != nil {
			return err
		}
		if err := e.store.CreditUserBalance(ctx, sess.Username, itinerary.TotalPrice); err != nil {
			return err
		}
		return e.store.DeleteReservation(ctx, resID)
	})
	if err != nil {
		e.log.Debug().Str("username", sess.Username).Int64("reservation", resID).
			Err(err).Msg("cancellation failed")
		return &CancelFailedError{ReservationID: resID}
	}

	e.log.Info().Str("username", sess.Username).Int64("reservation", resID).Msg("canceled reservation")
	return nil
}
