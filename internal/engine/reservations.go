package engine

import (
	"context"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// ReservationDetail is one reservation with its flight legs resolved for
// display.
type ReservationDetail struct {
	ReservationID int64
	Paid          bool
	Legs          []database.Flight
}

// Reservations lists the session user's reservations, oldest first, with
// the legs of each backing itinerary. The listing runs in one
// retry-controlled transaction so a consistent snapshot is rendered.
func (e *Engine) Reservations(ctx context.Context, sess *Session) ([]ReservationDetail, error) {
	if !sess.LoggedIn {
		return nil, ErrNotLoggedIn
	}

	var details []ReservationDetail
	err := e.tx.Serializable(ctx, func(ctx context.Context) error {
		details = nil

		reservations, err := e.store.ReservationsForUser(ctx, sess.Username)
		if err != nil {
			return err
		}

		for _, res := range reservations {
			itinerary, err := e.store.ItineraryByID(ctx, res.ItineraryID)
			if err != nil {
				return err
			}

			var legs []database.Flight
			if itinerary.IntFID != nil {
				leg, err := e.store.FlightByID(ctx, *itinerary.IntFID)
				if err != nil {
					return err
				}
				legs = append(legs, leg)
			}
			leg, err := e.store.FlightByID(ctx, itinerary.DestFID)
			if err != nil {
				return err
			}
			legs = append(legs, leg)

			details = append(details, ReservationDetail{
				ReservationID: res.ResID,
				Paid:          res.Paid,
				Legs:          legs,
			})
		}
		return nil
	})
	if err != nil {
		e.log.Debug().Str("username", sess.Username).Err(err).Msg("reservation listing failed")
		return nil, ErrRetrieveReservations
	}

	if len(details) == 0 {
		return nil, ErrNoReservations
	}
	return details, nil
}
