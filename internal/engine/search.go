package engine

import (
	"context"
	"sort"

	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

// rankKey orders itineraries by total flight time, breaking ties by the
// first leg's fid and then the second leg's fid. Direct itineraries carry 0
// for the second fid, so they sort ahead of one-stop itineraries with the
// same time and first leg.
type rankKey struct {
	totalTime int
	firstFID  int64
	secondFID int64
}

func keyFor(it Itinerary) rankKey {
	key := rankKey{totalTime: it.TotalTime(), firstFID: it.Legs[0].FID}
	if len(it.Legs) == 2 {
		key.secondFID = it.Legs[1].FID
	}
	return key
}

func (k rankKey) less(o rankKey) bool {
	if k.totalTime != o.totalTime {
		return k.totalTime < o.totalTime
	}
	if k.firstFID != o.firstFID {
		return k.firstFID < o.firstFID
	}
	return k.secondFID < o.secondFID
}

// Search queries the catalog for itineraries from origin to dest on day and
// replaces the session's cached result set with the ranked candidates,
// assigning zero-based indices in rank order. One-stop itineraries are only
// queried when directOnly is false and fewer than maxResults direct flights
// were found.
//
// Search performs no writes, so it runs as plain reads without the retry
// controller; a failed search is simply re-issued by the caller.
func (e *Engine) Search(ctx context.Context, sess *Session, origin, dest string, directOnly bool, day, maxResults int) ([]Itinerary, error) {
	sess.setSearchResults(nil)

	direct, err := e.store.DirectFlights(ctx, origin, dest, day, maxResults)
	if err != nil {
		e.log.Debug().Str("origin", origin).Str("dest", dest).Err(err).Msg("direct flight query failed")
		return nil, ErrSearchFailed
	}

	candidates := make([]Itinerary, 0, len(direct))
	for _, f := range direct {
		candidates = append(candidates, Itinerary{Legs: []database.Flight{f}})
	}

	if !directOnly && len(direct) < maxResults {
		pairs, err := e.store.OneStopFlights(ctx, origin, dest, day, maxResults-len(direct))
		if err != nil {
			e.log.Debug().Str("origin", origin).Str("dest", dest).Err(err).Msg("one-stop flight query failed")
			return nil, ErrSearchFailed
		}
		for _, pair := range pairs {
			candidates = append(candidates, Itinerary{Legs: []database.Flight{pair[0], pair[1]}})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoFlights
	}

	sort.Slice(candidates, func(i, j int) bool {
		return keyFor(candidates[i]).less(keyFor(candidates[j]))
	})

	// Identical keys mean identical legs; collapse them into one slot.
	deduped := candidates[:1]
	for _, it := range candidates[1:] {
		if keyFor(it) != keyFor(deduped[len(deduped)-1]) {
			deduped = append(deduped, it)
		}
	}

	sess.setSearchResults(deduped)
	return deduped, nil
}
