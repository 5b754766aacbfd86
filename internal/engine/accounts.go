package engine

import (
	"context"
)

// Login authenticates the session. The stored hash and salt are read in one
// retry-controlled transaction; hashing and comparison happen outside it.
// An unknown username and a wrong password both return ErrLoginFailed.
func (e *Engine) Login(ctx context.Context, sess *Session, username, password string) error {
	if sess.LoggedIn {
		return ErrAlreadyLoggedIn
	}

	var hash, salt []byte
	err := e.tx.Serializable(ctx, func(ctx context.Context) error {
		var err error
		hash, salt, err = e.store.UserCredentials(ctx, username)
		return err
	})
	if err != nil {
		e.log.Debug().Str("session", sess.ID.String()).Str("username", username).
			Err(err).Msg("login credential lookup failed")
		return ErrLoginFailed
	}

	if !e.creds.Verify(password, salt, hash) {
		return ErrLoginFailed
	}

	sess.LoggedIn = true
	sess.Username = username
	sess.setSearchResults(nil)
	e.log.Info().Str("session", sess.ID.String()).Str("username", username).Msg("logged in")
	return nil
}

// CreateCustomer creates a new user with the given initial balance. The
// balance must be non-negative. Duplicate usernames surface as ErrCreateUser
// rather than a distinct outcome.
func (e *Engine) CreateCustomer(ctx context.Context, username, password string, initialBalance int) error {
	if initialBalance < 0 {
		return ErrNegativeBalance
	}

	hash, salt, err := e.creds.Generate(password)
	if err != nil {
		e.log.Error().Str("username", username).Err(err).Msg("credential generation failed")
		return ErrCreateUser
	}

	err = e.tx.Serializable(ctx, func(ctx context.Context) error {
		return e.store.InsertUser(ctx, username, hash, salt, initialBalance)
	})
	if err != nil {
		e.log.Debug().Str("username", username).Err(err).Msg("create customer failed")
		return ErrCreateUser
	}

	e.log.Info().Str("username", username).Int("balance", initialBalance).Msg("created user")
	return nil
}
