package engine

import (
	"context"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// Store is the engine's contract with the flight catalog. Methods called
// inside a Transactor unit of work run under that transaction; Search calls
// them outside any transaction since it performs no writes.
// *database.Repository is the production implementation.
type Store interface {
	UserCredentials(ctx context.Context, username string) (hash, salt []byte, err error)
	InsertUser(ctx context.Context, username string, hash, salt []byte, balance int) error
	UserBalance(ctx context.Context, username string) (int, error)
	SetUserBalance(ctx context.Context, username string, balance int) error
	CreditUserBalance(ctx context.Context, username string, amount int) error

	DirectFlights(ctx context.Context, origin, dest string, day, limit int) ([]database.Flight, error)
	OneStopFlights(ctx context.Context, origin, dest string, day, limit int) ([][2]database.Flight, error)
	FlightByID(ctx context.Context, fid int64) (database.Flight, error)
	FlightCapacity(ctx context.Context, fid int64) (int, error)

	FindItineraryByShape(ctx context.Context, intFID *int64, destFID int64) (*database.ItineraryRow, error)
	ItineraryByID(ctx context.Context, id int64) (*database.ItineraryRow, error)
	InsertItinerary(ctx context.Context, intFID *int64, destFID int64, day, totalPrice int) (int64, error)
	IncrementBookings(ctx context.Context, id int64, bothLegs bool) error
	DecrementBookings(ctx context.Context, id int64, bothLegs bool) error

	HasReservationOnDay(ctx context.Context, username string, day int) (bool, error)
	InsertReservation(ctx context.Context, username string, itineraryID int64) (int64, error)
	UnpaidReservationCost(ctx context.Context, resID int64, username string) (int, error)
	MarkReservationPaid(ctx context.Context, resID int64) error
	ReservationsForUser(ctx context.Context, username string) ([]database.Reservation, error)
	ReservationItinerary(ctx context.Context, resID int64, username string) (*database.ItineraryRow, error)
	DeleteReservation(ctx context.Context, resID int64) error
}

// Transactor runs a unit of work in a serializable transaction, retrying it
// on store conflicts. *database.TxManager is the production implementation.
type Transactor interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Credentials hashes and verifies passwords. auth.Service is the production
// implementation.
type Credentials interface {
	Generate(password string) (hash, salt []byte, err error)
	Verify(password string, salt, hash []byte) bool
}
