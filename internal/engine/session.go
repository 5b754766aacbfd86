package engine

import (
	"github.com/google/uuid"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// Itinerary is a search result: one or two flights flown in sequence on one
// calendar day.
type Itinerary struct {
	Legs []database.Flight
}

// TotalTime is the summed duration of the legs in minutes.
func (it Itinerary) TotalTime() int {
	total := 0
	for _, leg := range it.Legs {
		total += leg.Duration
	}
	return total
}

// TotalPrice is the summed price of the legs.
func (it Itinerary) TotalPrice() int {
	total := 0
	for _, leg := range it.Legs {
		total += leg.Price
	}
	return total
}

// Session is the per-user state between login and the end of the
// interaction. One session serves one user; sessions are never shared
// between goroutines. The cached search results are the only state read
// without a transaction: they are plain local memory.
type Session struct {
	ID         uuid.UUID
	LoggedIn   bool
	Username   string
	lastSearch []Itinerary
}

// NewSession creates an empty, logged-out session.
func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

// searchResult returns the itinerary at the zero-based index assigned by the
// most recent search.
func (s *Session) searchResult(index int) (Itinerary, bool) {
	if index < 0 || index >= len(s.lastSearch) {
		return Itinerary{}, false
	}
	return s.lastSearch[index], true
}

func (s *Session) setSearchResults(results []Itinerary) {
	s.lastSearch = results
}
