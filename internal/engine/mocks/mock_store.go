package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// MockStore is a mock implementation of engine.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) UserCredentials(ctx context.Context, username string) ([]byte, []byte, error) {
	args := m.Called(ctx, username)
	var hash, salt []byte
	if args.Get(0) != nil {
		hash = args.Get(0).([]byte)
	}
	if args.Get(1) != nil {
		salt = args.Get(1).([]byte)
	}
	return hash, salt, args.Error(2)
}

func (m *MockStore) InsertUser(ctx context.Context, username string, hash, salt []byte, balance int) error {
	args := m.Called(ctx, username, hash, salt, balance)
	return args.Error(0)
}

func (m *MockStore) UserBalance(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) SetUserBalance(ctx context.Context, username string, balance int) error {
	args := m.Called(ctx, username, balance)
	return args.Error(0)
}

func (m *MockStore) CreditUserBalance(ctx context.Context, username string, amount int) error {
	args := m.Called(ctx, username, amount)
	return args.Error(0)
}

func (m *MockStore) DirectFlights(ctx context.Context, origin, dest string, day, limit int) ([]database.Flight, error) {
	args := m.Called(ctx, origin, dest, day, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Flight), args.Error(1)
}

func (m *MockStore) OneStopFlights(ctx context.Context, origin, dest string, day, limit int) ([][2]database.Flight, error) {
	args := m.Called(ctx, origin, dest, day, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][2]database.Flight), args.Error(1)
}

func (m *MockStore) FlightByID(ctx context.Context, fid int64) (database.Flight, error) {
	args := m.Called(ctx, fid)
	return args.Get(0).(database.Flight), args.Error(1)
}

func (m *MockStore) FlightCapacity(ctx context.Context, fid int64) (int, error) {
	args := m.Called(ctx, fid)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) FindItineraryByShape(ctx context.Context, intFID *int64, destFID int64) (*database.ItineraryRow, error) {
	args := m.Called(ctx, intFID, destFID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.ItineraryRow), args.Error(1)
}

func (m *MockStore) ItineraryByID(ctx context.Context, id int64) (*database.ItineraryRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.ItineraryRow), args.Error(1)
}

func (m *MockStore) InsertItinerary(ctx context.Context, intFID *int64, destFID int64, day, totalPrice int) (int64, error) {
	args := m.Called(ctx, intFID, destFID, day, totalPrice)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) IncrementBookings(ctx context.Context, id int64, bothLegs bool) error {
	args := m.Called(ctx, id, bothLegs)
	return args.Error(0)
}

func (m *MockStore) DecrementBookings(ctx context.Context, id int64, bothLegs bool) error {
	args := m.Called(ctx, id, bothLegs)
	return args.Error(0)
}

func (m *MockStore) HasReservationOnDay(ctx context.Context, username string, day int) (bool, error) {
	args := m.Called(ctx, username, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) InsertReservation(ctx context.Context, username string, itineraryID int64) (int64, error) {
	args := m.Called(ctx, username, itineraryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UnpaidReservationCost(ctx context.Context, resID int64, username string) (int, error) {
	args := m.Called(ctx, resID, username)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) MarkReservationPaid(ctx context.Context, resID int64) error {
	args := m.Called(ctx, resID)
	return args.Error(0)
}

func (m *MockStore) ReservationsForUser(ctx context.Context, username string) ([]database.Reservation, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Reservation), args.Error(1)
}

func (m *MockStore) ReservationItinerary(ctx context.Context, resID int64, username string) (*database.ItineraryRow, error) {
	args := m.Called(ctx, resID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.ItineraryRow), args.Error(1)
}

func (m *MockStore) DeleteReservation(ctx context.Context, resID int64) error {
	args := m.Called(ctx, resID)
	return args.Error(0)
}
