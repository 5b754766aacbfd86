package engine_test

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cx-tal-miterani/flight-reservation/internal/auth"
	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine/mocks"
)

// stubTransactor runs the unit of work once, directly, with no transaction.
// The engine never inspects the transaction itself, so this stands in for a
// committed serializable transaction.
type stubTransactor struct {
	err error
}

func (s stubTransactor) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

// retryTransactor simulates a serialization conflict at commit time on the
// first attempt: a unit of work that succeeds is re-run once, so Once()
// expectations on the store can script what the retry re-reads.
type retryTransactor struct{}

func (retryTransactor) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fn(ctx)
}

func newTestEngine(store *mocks.MockStore) *engine.Engine {
	return engine.New(store, stubTransactor{}, auth.NewService(), zerolog.Nop())
}

func loggedIn(username string) *engine.Session {
	return &engine.Session{LoggedIn: true, Username: username}
}

// seattleBoston is a direct flight used across the booking tests.
var seattleBoston = database.Flight{
	FID:        702,
	DayOfMonth: 10,
	CarrierID:  "DL",
	FlightNum:  "1243",
	OriginCity: "Seattle WA",
	DestCity:   "Boston MA",
	Duration:   298,
	Capacity:   14,
	Price:      141,
}

// seattleSF and sfBoston form a one-stop itinerary.
var seattleSF = database.Flight{
	FID:        704,
	DayOfMonth: 10,
	CarrierID:  "AS",
	FlightNum:  "20",
	OriginCity: "Seattle WA",
	DestCity:   "San Francisco CA",
	Duration:   110,
	Capacity:   8,
	Price:      97,
}

var sfBoston = database.Flight{
	FID:        711,
	DayOfMonth: 10,
	CarrierID:  "UA",
	FlightNum:  "331",
	OriginCity: "San Francisco CA",
	DestCity:   "Boston MA",
	Duration:   315,
	Capacity:   11,
	Price:      210,
}
