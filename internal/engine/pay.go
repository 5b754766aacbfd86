package engine

import (
	"context"
	"errors"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// Receipt is the successful outcome of a payment.
type Receipt struct {
	ReservationID int64
	Balance       int
}

// Pay settles the unpaid reservation resID owned by the session user:
// the balance is debited and the reservation marked paid in one
// transaction. A missing or already-paid reservation and an insufficient
// balance are terminal business outcomes, not conflicts.
func (e *Engine) Pay(ctx context.Context, sess *Session, resID int64) (Receipt, error) {
	if !sess.LoggedIn {
		return Receipt{}, ErrNotLoggedIn
	}

	var receipt Receipt
	err := e.tx.Serializable(ctx, func(ctx context.Context) error {
		cost, err := e.store.UnpaidReservationCost(ctx, resID, sess.Username)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return &UnpaidReservationNotFoundError{ReservationID: resID, Username: sess.Username}
			}
			return err
		}

		balance, err := e.store.UserBalance(ctx, sess.Username)
		if err != nil {
			return err
		}
		if balance < cost {
			return &InsufficientBalanceError{Balance: balance, Cost: cost}
		}

		newBalance := balance - cost
		if err := e.store.SetUserBalance(ctx, sess.Username, newBalance); err != nil {
			return err
		}
		if err := e.store.MarkReservationPaid(ctx, resID); err != nil {
			return err
		}

		receipt = Receipt{ReservationID: resID, Balance: newBalance}
		return nil
	})

	var notFound *UnpaidReservationNotFoundError
	var insufficient *InsufficientBalanceError
	switch {
	case err == nil:
		e.log.Info().Str("username", sess.Username).Int64("reservation", resID).
			Int("balance", receipt.Balance).Msg("paid reservation")
		return receipt, nil
	case errors.As(err, &notFound), errors.As(err, &insufficient):
		return Receipt{}, err
	default:
		e.log.Debug().Str("username", sess.Username).Int64("reservation", resID).
			Err(err).Msg("payment failed")
		return Receipt{}, ErrPaymentFailed
	}
}
