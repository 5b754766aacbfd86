package render_test

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
	"github.com/cx-tal-miterani/flight-reservation/internal/render"
)

var (
	seattleBoston = database.Flight{
		FID: 702, DayOfMonth: 10, CarrierID: "DL", FlightNum: "1243",
		OriginCity: "Seattle WA", DestCity: "Boston MA",
		Duration: 298, Capacity: 14, Price: 141,
	}
	seattleSF = database.Flight{
		FID: 704, DayOfMonth: 10, CarrierID: "AS", FlightNum: "20",
		OriginCity: "Seattle WA", DestCity: "San Francisco CA",
		Duration: 110, Capacity: 8, Price: 97,
	}
	sfBoston = database.Flight{
		FID: 711, DayOfMonth: 10, CarrierID: "UA", FlightNum: "331",
		OriginCity: "San Francisco CA", DestCity: "Boston MA",
		Duration: 315, Capacity: 11, Price: 210,
	}
)

func TestSearchRendersRankedItineraries(t *testing.T) {
	results := []engine.Itinerary{
		{Legs: []database.Flight{seattleBoston}},
		{Legs: []database.Flight{seattleSF, sfBoston}},
	}

	out := render.Search(results, nil)

	g := goldie.New(t)
	g.Assert(t, "search_results", []byte(out))
}

func TestReservationsRendersLegs(t *testing.T) {
	details := []engine.ReservationDetail{
		{ReservationID: 1, Paid: true, Legs: []database.Flight{seattleBoston}},
		{ReservationID: 2, Paid: false, Legs: []database.Flight{seattleSF, sfBoston}},
	}

	out := render.Reservations(details, nil)

	g := goldie.New(t)
	g.Assert(t, "reservations", []byte(out))
}

func TestLogin(t *testing.T) {
	assert.Equal(t, "Logged in as alice\n", render.Login("alice", nil))
	assert.Equal(t, "User already logged in\n", render.Login("alice", engine.ErrAlreadyLoggedIn))
	assert.Equal(t, "Login failed\n", render.Login("alice", engine.ErrLoginFailed))
}

func TestCreateCustomer(t *testing.T) {
	assert.Equal(t, "Created user alice\n", render.CreateCustomer("alice", nil))
	assert.Equal(t, "Failed to create user\n", render.CreateCustomer("alice", engine.ErrCreateUser))
	assert.Equal(t, "Failed to create user\n", render.CreateCustomer("alice", engine.ErrNegativeBalance))
}

func TestSearchFailures(t *testing.T) {
	assert.Equal(t, "No flights match your selection.\n", render.Search(nil, engine.ErrNoFlights))
	assert.Equal(t, "Failed to search\n", render.Search(nil, engine.ErrSearchFailed))
}

func TestBook(t *testing.T) {
	assert.Equal(t, "Booked flight(s), reservation ID: 42\n", render.Book(42, nil))
	assert.Equal(t, "Cannot book reservations, not logged in\n", render.Book(0, engine.ErrNotLoggedIn))
	assert.Equal(t, "No such itinerary 3\n", render.Book(0, &engine.NoSuchItineraryError{Index: 3}))
	assert.Equal(t, "You cannot book two flights in the same day\n", render.Book(0, engine.ErrSameDayBooking))
	assert.Equal(t, "Booking failed\n", render.Book(0, engine.ErrBookingFailed))
}

func TestPay(t *testing.T) {
	assert.Equal(t, "Paid reservation: 42 remaining balance: 300\n",
		render.Pay(engine.Receipt{ReservationID: 42, Balance: 300}, nil))
	assert.Equal(t, "Cannot pay, not logged in\n", render.Pay(engine.Receipt{}, engine.ErrNotLoggedIn))
	assert.Equal(t, "Cannot find unpaid reservation 42 under user: alice\n",
		render.Pay(engine.Receipt{}, &engine.UnpaidReservationNotFoundError{ReservationID: 42, Username: "alice"}))
	assert.Equal(t, "User has only 150 in account but itinerary costs 200\n",
		render.Pay(engine.Receipt{}, &engine.InsufficientBalanceError{Balance: 150, Cost: 200}))
	assert.Equal(t, "Failed to pay for reservation\n", render.Pay(engine.Receipt{}, engine.ErrPaymentFailed))
}

func TestReservationsFailures(t *testing.T) {
	assert.Equal(t, "Cannot view reservations, not logged in\n", render.Reservations(nil, engine.ErrNotLoggedIn))
	assert.Equal(t, "No reservations found\n", render.Reservations(nil, engine.ErrNoReservations))
	assert.Equal(t, "Failed to retrieve reservations\n", render.Reservations(nil, engine.ErrRetrieveReservations))
}

func TestCancel(t *testing.T) {
	assert.Equal(t, "Canceled reservation 42\n", render.Cancel(42, nil))
	assert.Equal(t, "Cannot cancel reservations, not logged in\n", render.Cancel(42, engine.ErrNotLoggedIn))
	assert.Equal(t, "Failed to cancel reservation 42\n", render.Cancel(42, errors.New("boom")))
}
