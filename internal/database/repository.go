package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Querier is the subset of pgx operations the repository needs. Both
// pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles all catalog SQL. Methods run against the transaction
// injected into the context by TxManager when present, and directly against
// the pool otherwise.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) q(ctx context.Context) Querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// --- User operations ---

// UserCredentials returns the stored password hash and salt for username.
func (r *Repository) UserCredentials(ctx context.Context, username string) (hash, salt []byte, err error) {
	err = r.q(ctx).QueryRow(ctx, `
		SELECT pass_hash, pass_salt FROM users WHERE username = $1
	`, username).Scan(&hash, &salt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	return hash, salt, nil
}

// InsertUser creates a new user row.
func (r *Repository) InsertUser(ctx context.Context, username string, hash, salt []byte, balance int) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO users (username, pass_hash, pass_salt, balance)
		VALUES ($1, $2, $3, $4)
	`, username, hash, salt, balance)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UserBalance returns the current balance for username.
func (r *Repository) UserBalance(ctx context.Context, username string) (int, error) {
	var balance int
	err := r.q(ctx).QueryRow(ctx, `
		SELECT balance FROM users WHERE username = $1
	`, username).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// SetUserBalance overwrites the balance for username.
func (r *Repository) SetUserBalance(ctx context.Context, username string, balance int) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE users SET balance = $1 WHERE username = $2
	`, balance, username)
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

// CreditUserBalance adds amount to the balance for username.
func (r *Repository) CreditUserBalance(ctx context.Context, username string, amount int) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE users SET balance = balance + $1 WHERE username = $2
	`, amount, username)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

// --- Flight operations ---

// DirectFlights returns up to limit non-canceled flights from origin to dest
// on day, ordered by duration then fid.
func (r *Repository) DirectFlights(ctx context.Context, origin, dest string, day, limit int) ([]Flight, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT fid, day_of_month, carrier_id, flight_num, origin_city, dest_city,
		       actual_time, capacity, price
		FROM flights
		WHERE origin_city = $1 AND dest_city = $2 AND day_of_month = $3 AND canceled = 0
		ORDER BY actual_time, fid
		LIMIT $4
	`, origin, dest, day, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query direct flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		var f Flight
		err := rows.Scan(
			&f.FID, &f.DayOfMonth, &f.CarrierID, &f.FlightNum,
			&f.OriginCity, &f.DestCity, &f.Duration, &f.Capacity, &f.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// OneStopFlights returns up to limit pairs of non-canceled flights
// connecting origin to dest through one intermediate city on day, ordered by
// combined duration then the two fids.
func (r *Repository) OneStopFlights(ctx context.Context, origin, dest string, day, limit int) ([][2]Flight, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT f1.fid, f1.carrier_id, f1.flight_num, f1.dest_city,
		       f1.actual_time, f1.capacity, f1.price,
		       f2.fid, f2.carrier_id, f2.flight_num,
		       f2.actual_time, f2.capacity, f2.price
		FROM flights f1
		JOIN flights f2 ON f1.dest_city = f2.origin_city
		             AND f1.day_of_month = f2.day_of_month
		WHERE f1.origin_city = $1 AND f2.dest_city = $2 AND f1.day_of_month = $3
		  AND f1.canceled = 0 AND f2.canceled = 0
		ORDER BY f1.actual_time + f2.actual_time, f1.fid, f2.fid
		LIMIT $4
	`, origin, dest, day, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query one-stop flights: %w", err)
	}
	defer rows.Close()

	var pairs [][2]Flight
	for rows.Next() {
		first := Flight{OriginCity: origin, DayOfMonth: day}
		second := Flight{DestCity: dest, DayOfMonth: day}
		err := rows.Scan(
			&first.FID, &first.CarrierID, &first.FlightNum, &first.DestCity,
			&first.Duration, &first.Capacity, &first.Price,
			&second.FID, &second.CarrierID, &second.FlightNum,
			&second.Duration, &second.Capacity, &second.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan one-stop pair: %w", err)
		}
		second.OriginCity = first.DestCity
		pairs = append(pairs, [2]Flight{first, second})
	}
	return pairs, rows.Err()
}

// FlightByID returns the flight with the given fid.
func (r *Repository) FlightByID(ctx context.Context, fid int64) (Flight, error) {
	var f Flight
	err := r.q(ctx).QueryRow(ctx, `
		SELECT fid, day_of_month, carrier_id, flight_num, origin_city, dest_city,
		       actual_time, capacity, price
		FROM flights WHERE fid = $1
	`, fid).Scan(
		&f.FID, &f.DayOfMonth, &f.CarrierID, &f.FlightNum,
		&f.OriginCity, &f.DestCity, &f.Duration, &f.Capacity, &f.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Flight{}, ErrNotFound
		}
		return Flight{}, fmt.Errorf("failed to get flight: %w", err)
	}
	return f, nil
}

// FlightCapacity returns the advertised seat count for fid.
func (r *Repository) FlightCapacity(ctx context.Context, fid int64) (int, error) {
	var capacity int
	err := r.q(ctx).QueryRow(ctx, `
		SELECT capacity FROM flights WHERE fid = $1
	`, fid).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get capacity: %w", err)
	}
	return capacity, nil
}

// InsertFlight adds a flight to the catalog. Used by tooling; the engine
// never writes flights.
func (r *Repository) InsertFlight(ctx context.Context, f Flight) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO flights (fid, day_of_month, carrier_id, flight_num,
		                     origin_city, dest_city, actual_time, capacity, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, f.FID, f.DayOfMonth, f.CarrierID, f.FlightNum,
		f.OriginCity, f.DestCity, f.Duration, f.Capacity, f.Price)
	if err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}
	return nil
}

// --- Itinerary operations ---

// FindItineraryByShape returns the persisted itinerary for the exact
// (intermediate fid or none, destination fid) shape, or ErrNotFound.
func (r *Repository) FindItineraryByShape(ctx context.Context, intFID *int64, destFID int64) (*ItineraryRow, error) {
	var row ItineraryRow
	err := r.q(ctx).QueryRow(ctx, `
		SELECT id, int_fid, dest_fid, day_of_month, total_price, bookings_int, bookings_dest
		FROM itineraries
		WHERE int_fid IS NOT DISTINCT FROM $1 AND dest_fid = $2
	`, intFID, destFID).Scan(
		&row.ID, &row.IntFID, &row.DestFID, &row.DayOfMonth,
		&row.TotalPrice, &row.BookingsInt, &row.BookingsDest,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	return &row, nil
}

// ItineraryByID returns the persisted itinerary with the given id.
func (r *Repository) ItineraryByID(ctx context.Context, id int64) (*ItineraryRow, error) {
	var row ItineraryRow
	err := r.q(ctx).QueryRow(ctx, `
		SELECT id, int_fid, dest_fid, day_of_month, total_price, bookings_int, bookings_dest
		FROM itineraries WHERE id = $1
	`, id).Scan(
		&row.ID, &row.IntFID, &row.DestFID, &row.DayOfMonth,
		&row.TotalPrice, &row.BookingsInt, &row.BookingsDest,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return &row, nil
}

// InsertItinerary creates a persisted itinerary with its booking counters
// initialized to 1 on each leg present, and returns the store-assigned id.
func (r *Repository) InsertItinerary(ctx context.Context, intFID *int64, destFID int64, day, totalPrice int) (int64, error) {
	bookingsInt := 0
	if intFID != nil {
		bookingsInt = 1
	}

	var id int64
	err := r.q(ctx).QueryRow(ctx, `
		INSERT INTO itineraries (int_fid, dest_fid, day_of_month, total_price, bookings_int, bookings_dest)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id
	`, intFID, destFID, day, totalPrice, bookingsInt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return id, nil
}

// IncrementBookings bumps the booking counters on itinerary id: the
// destination leg always, the intermediate leg too when bothLegs is set.
func (r *Repository) IncrementBookings(ctx context.Context, id int64, bothLegs bool) error {
	query := `UPDATE itineraries SET bookings_dest = bookings_dest + 1 WHERE id = $1`
	if bothLegs {
		query = `UPDATE itineraries
		         SET bookings_int = bookings_int + 1, bookings_dest = bookings_dest + 1
		         WHERE id = $1`
	}
	if _, err := r.q(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment bookings: %w", err)
	}
	return nil
}

// DecrementBookings is the inverse of IncrementBookings.
func (r *Repository) DecrementBookings(ctx context.Context, id int64, bothLegs bool) error {
	query := `UPDATE itineraries SET bookings_dest = bookings_dest - 1 WHERE id = $1`
	if bothLegs {
		query = `UPDATE itineraries
		         SET bookings_int = bookings_int - 1, bookings_dest = bookings_dest - 1
		         WHERE id = $1`
	}
	if _, err := r.q(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to decrement bookings: %w", err)
	}
	return nil
}

// --- Reservation operations ---

// HasReservationOnDay reports whether username already holds a reservation
// whose itinerary falls on day.
func (r *Repository) HasReservationOnDay(ctx context.Context, username string, day int) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM reservations r
			JOIN itineraries i ON i.id = r.itinerary_id
			WHERE r.username = $1 AND i.day_of_month = $2
		)
	`, username, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check day availability: %w", err)
	}
	return exists, nil
}

// InsertReservation creates an unpaid reservation for username on the given
// itinerary and returns the store-assigned reservation id.
func (r *Repository) InsertReservation(ctx context.Context, username string, itineraryID int64) (int64, error) {
	var resID int64
	err := r.q(ctx).QueryRow(ctx, `
		INSERT INTO reservations (username, is_paid, itinerary_id)
		VALUES ($1, FALSE, $2)
		RETURNING res_id
	`, username, itineraryID).Scan(&resID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return resID, nil
}

// UnpaidReservationCost returns the total price of the unpaid reservation
// matching (resID, username), or ErrNotFound.
func (r *Repository) UnpaidReservationCost(ctx context.Context, resID int64, username string) (int, error) {
	var cost int
	err := r.q(ctx).QueryRow(ctx, `
		SELECT i.total_price
		FROM reservations r
		JOIN itineraries i ON i.id = r.itinerary_id
		WHERE r.res_id = $1 AND r.username = $2 AND NOT r.is_paid
	`, resID, username).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to find unpaid reservation: %w", err)
	}
	return cost, nil
}

// MarkReservationPaid sets the paid flag on resID.
func (r *Repository) MarkReservationPaid(ctx context.Context, resID int64) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE reservations SET is_paid = TRUE WHERE res_id = $1
	`, resID)
	if err != nil {
		return fmt.Errorf("failed to mark reservation paid: %w", err)
	}
	return nil
}

// ReservationsForUser returns all reservations held by username, oldest
// first.
func (r *Repository) ReservationsForUser(ctx context.Context, username string) ([]Reservation, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT res_id, username, is_paid, itinerary_id
		FROM reservations WHERE username = $1
		ORDER BY res_id
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ResID, &res.Username, &res.Paid, &res.ItineraryID); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// ReservationItinerary returns the persisted itinerary backing the
// reservation matching (resID, username), or ErrNotFound. Ownership
// mismatches are indistinguishable from missing reservations.
func (r *Repository) ReservationItinerary(ctx context.Context, resID int64, username string) (*ItineraryRow, error) {
	var row ItineraryRow
	err := r.q(ctx).QueryRow(ctx, `
		SELECT i.id, i.int_fid, i.dest_fid, i.day_of_month, i.total_price,
		       i.bookings_int, i.bookings_dest
		FROM reservations r
		JOIN itineraries i ON i.id = r.itinerary_id
		WHERE r.res_id = $1 AND r.username = $2
	`, resID, username).Scan(
		&row.ID, &row.IntFID, &row.DestFID, &row.DayOfMonth,
		&row.TotalPrice, &row.BookingsInt, &row.BookingsDest,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation itinerary: %w", err)
	}
	return &row, nil
}

// DeleteReservation removes resID. Its id is retired, never reused; the
// sequence is not rewound.
func (r *Repository) DeleteReservation(ctx context.Context, resID int64) error {
	_, err := r.q(ctx).Exec(ctx, `
		DELETE FROM reservations WHERE res_id = $1
	`, resID)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

// --- Tooling ---

// ClearBookingData removes all users, reservations and itineraries and
// restarts their id sequences. Flights are left untouched. Test and stress
// tooling only.
func (r *Repository) ClearBookingData(ctx context.Context) error {
	statements := []string{
		`DELETE FROM reservations`,
		`DELETE FROM itineraries`,
		`DELETE FROM users`,
		`ALTER SEQUENCE reservations_res_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE itineraries_id_seq RESTART WITH 1`,
	}
	for _, stmt := range statements {
		if _, err := r.q(ctx).Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear booking data: %w", err)
		}
	}
	return nil
}
