package engine

import (
	"errors"
	"fmt"
)

// Terminal business outcomes. Deliberately coarse in places: login never
// reveals whether the username or the password was wrong, and cancellation
// never reveals whether the reservation was missing or owned by someone
// else.
var (
	ErrAlreadyLoggedIn = errors.New("user already logged in")
	ErrLoginFailed     = errors.New("login failed")
	ErrNotLoggedIn     = errors.New("not logged in")

	ErrNegativeBalance = errors.New("initial balance must be non-negative")
	ErrCreateUser      = errors.New("failed to create user")

	ErrNoFlights    = errors.New("no flights match the selection")
	ErrSearchFailed = errors.New("failed to search")

	ErrSameDayBooking = errors.New("user already has a reservation on that day")
	ErrBookingFailed  = errors.New("booking failed")

	ErrPaymentFailed = errors.New("failed to pay for reservation")

	ErrNoReservations       = errors.New("no reservations found")
	ErrRetrieveReservations = errors.New("failed to retrieve reservations")
)

// NoSuchItineraryError reports a booking index that is not in the session's
// last search results.
type NoSuchItineraryError struct {
	Index int
}

func (e *NoSuchItineraryError) Error() string {
	return fmt.Sprintf("no such itinerary %d", e.Index)
}

// UnpaidReservationNotFoundError reports that no unpaid reservation matched
// the id under the session user.
type UnpaidReservationNotFoundError struct {
	ReservationID int64
	Username      string
}

func (e *UnpaidReservationNotFoundError) Error() string {
	return fmt.Sprintf("cannot find unpaid reservation %d under user: %s", e.ReservationID, e.Username)
}

// InsufficientBalanceError reports a balance too small to cover the
// itinerary cost.
type InsufficientBalanceError struct {
	Balance int
	Cost    int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("user has only %d in account but itinerary costs %d", e.Balance, e.Cost)
}

// CancelFailedError reports a failed cancellation. It carries no reason.
type CancelFailedError struct {
	ReservationID int64
}

func (e *CancelFailedError) Error() string {
	return fmt.Sprintf("failed to cancel reservation %d", e.ReservationID)
}
