// Package render turns engine outcomes into the user-facing text contract.
// The wording is fixed; callers compare against it, so changes here are
// breaking.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
)

// FlightLine renders one flight in the canonical single-line format.
func FlightLine(f database.Flight) string {
	return fmt.Sprintf("ID: %d Day: %d Carrier: %s Number: %s Origin: %s Dest: %s Duration: %d Capacity: %d Price: %d",
		f.FID, f.DayOfMonth, f.CarrierID, f.FlightNum, f.OriginCity, f.DestCity, f.Duration, f.Capacity, f.Price)
}

// Login renders the outcome of a login attempt.
func Login(username string, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("Logged in as %s\n", username)
	case errors.Is(err, engine.ErrAlreadyLoggedIn):
		return "User already logged in\n"
	default:
		return "Login failed\n"
	}
}

// CreateCustomer renders the outcome of a customer creation.
func CreateCustomer(username string, err error) string {
	if err == nil {
		return fmt.Sprintf("Created user %s\n", username)
	}
	return "Failed to create user\n"
}

// Search renders a ranked result set with zero-based itinerary indices, or
// the failure outcome.
func Search(results []engine.Itinerary, err error) string {
	switch {
	case errors.Is(err, engine.ErrNoFlights):
		return "No flights match your selection.\n"
	case err != nil:
		return "Failed to search\n"
	}

	var sb strings.Builder
	for i, it := range results {
		fmt.Fprintf(&sb, "Itinerary %d: %d flight(s), %d minutes\n", i, len(it.Legs), it.TotalTime())
		for _, leg := range it.Legs {
			sb.WriteString(FlightLine(leg))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Book renders the outcome of a booking.
func Book(resID int64, err error) string {
	var noSuch *engine.NoSuchItineraryError
	switch {
	case err == nil:
		return fmt.Sprintf("Booked flight(s), reservation ID: %d\n", resID)
	case errors.Is(err, engine.ErrNotLoggedIn):
		return "Cannot book reservations, not logged in\n"
	case errors.As(err, &noSuch):
		return fmt.Sprintf("No such itinerary %d\n", noSuch.Index)
	case errors.Is(err, engine.ErrSameDayBooking):
		return "You cannot book two flights in the same day\n"
	default:
		return "Booking failed\n"
	}
}

// Pay renders the outcome of a payment.
func Pay(receipt engine.Receipt, err error) string {
	var notFound *engine.UnpaidReservationNotFoundError
	var insufficient *engine.InsufficientBalanceError
	switch {
	case err == nil:
		return fmt.Sprintf("Paid reservation: %d remaining balance: %d\n", receipt.ReservationID, receipt.Balance)
	case errors.Is(err, engine.ErrNotLoggedIn):
		return "Cannot pay, not logged in\n"
	case errors.As(err, &notFound):
		return fmt.Sprintf("Cannot find unpaid reservation %d under user: %s\n", notFound.ReservationID, notFound.Username)
	case errors.As(err, &insufficient):
		return fmt.Sprintf("User has only %d in account but itinerary costs %d\n", insufficient.Balance, insufficient.Cost)
	default:
		return "Failed to pay for reservation\n"
	}
}

// Reservations renders the user's reservation listing.
func Reservations(details []engine.ReservationDetail, err error) string {
	switch {
	case errors.Is(err, engine.ErrNotLoggedIn):
		return "Cannot view reservations, not logged in\n"
	case errors.Is(err, engine.ErrNoReservations):
		return "No reservations found\n"
	case err != nil:
		return "Failed to retrieve reservations\n"
	}

	var sb strings.Builder
	for _, d := range details {
		fmt.Fprintf(&sb, "Reservation %d paid: %t:\n", d.ReservationID, d.Paid)
		for _, leg := range d.Legs {
			sb.WriteString(FlightLine(leg))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Cancel renders the outcome of a cancellation.
func Cancel(resID int64, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("Canceled reservation %d\n", resID)
	case errors.Is(err, engine.ErrNotLoggedIn):
		return "Cannot cancel reservations, not logged in\n"
	default:
		return fmt.Sprintf("Failed to cancel reservation %d\n", resID)
	}
}
