// Package engine implements the session-scoped reservation operations:
// login, customer creation, itinerary search, booking, payment, reservation
// listing and cancellation. Every mutating operation runs inside one
// retry-controlled serializable transaction; concurrency between sessions is
// resolved entirely by the store's isolation, never by in-process locks.
package engine

import (
	"github.com/rs/zerolog"
)

// Engine executes reservation operations against the flight catalog. One
// engine instance serves one session at a time and performs no internal
// parallelism.
type Engine struct {
	store Store
	tx    Transactor
	creds Credentials
	log   zerolog.Logger
}

// New creates an engine over the given store, transactor and credential
// service.
func New(store Store, tx Transactor, creds Credentials, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		tx:    tx,
		creds: creds,
		log:   log,
	}
}
