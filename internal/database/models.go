package database

// Flight is an immutable catalog record. Capacity is the number of seats the
// flight sells, not the number remaining.
type Flight struct {
	FID        int64
	DayOfMonth int
	CarrierID  string
	FlightNum  string
	OriginCity string
	DestCity   string
	Duration   int
	Capacity   int
	Price      int
}

// ItineraryRow is a persisted itinerary shape. IntFID is nil for direct
// itineraries. The booking counters track how many active reservations
// occupy each leg and never exceed the capacity of the flight they count
// against.
type ItineraryRow struct {
	ID           int64
	IntFID       *int64
	DestFID      int64
	DayOfMonth   int
	TotalPrice   int
	BookingsInt  int
	BookingsDest int
}

// Reservation ids are assigned by the store, increase monotonically, and are
// never reused after cancellation.
type Reservation struct {
	ResID       int64
	Username    string
	Paid        bool
	ItineraryID int64
}

// User is an account row. Balance never goes negative.
type User struct {
	Username string
	PassHash []byte
	PassSalt []byte
	Balance  int
}
