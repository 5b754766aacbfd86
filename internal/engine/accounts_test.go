package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/flight-reservation/internal/auth"
	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine/mocks"
)

func TestLogin(t *testing.T) {
	creds := auth.NewService()
	hash, salt, err := creds.Generate("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		lookup   func(m *mocks.MockStore)
		wantErr  error
	}{
		{
			name:     "success",
			password: "correct horse",
			lookup: func(m *mocks.MockStore) {
				m.On("UserCredentials", mock.Anything, "alice").Return(hash, salt, nil)
			},
			wantErr: nil,
		},
		{
			name:     "wrong password",
			password: "battery staple",
			lookup: func(m *mocks.MockStore) {
				m.On("UserCredentials", mock.Anything, "alice").Return(hash, salt, nil)
			},
			wantErr: engine.ErrLoginFailed,
		},
		{
			name:     "unknown username is indistinguishable from wrong password",
			password: "correct horse",
			lookup: func(m *mocks.MockStore) {
				m.On("UserCredentials", mock.Anything, "alice").Return(nil, nil, database.ErrNotFound)
			},
			wantErr: engine.ErrLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockStore)
			tt.lookup(store)
			eng := newTestEngine(store)
			sess := engine.NewSession()

			err := eng.Login(context.Background(), sess, "alice", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, sess.LoggedIn)
				assert.Empty(t, sess.Username)
			} else {
				require.NoError(t, err)
				assert.True(t, sess.LoggedIn)
				assert.Equal(t, "alice", sess.Username)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestLoginRejectsActiveSession(t *testing.T) {
	store := new(mocks.MockStore)
	eng := newTestEngine(store)
	sess := loggedIn("alice")

	err := eng.Login(context.Background(), sess, "bob", "pw")

	assert.ErrorIs(t, err, engine.ErrAlreadyLoggedIn)
	assert.Equal(t, "alice", sess.Username)
	store.AssertNotCalled(t, "UserCredentials", mock.Anything, mock.Anything)
}

func TestLoginClearsPreviousSearchResults(t *testing.T) {
	creds := auth.NewService()
	hash, salt, err := creds.Generate("pw")
	require.NoError(t, err)

	store := new(mocks.MockStore)
	store.On("DirectFlights", mock.Anything, "Seattle WA", "Boston MA", 10, 5).
		Return([]database.Flight{seattleBoston}, nil)
	store.On("UserCredentials", mock.Anything, "alice").Return(hash, salt, nil)
	eng := newTestEngine(store)

	sess := engine.NewSession()
	_, err = eng.Search(context.Background(), sess, "Seattle WA", "Boston MA", true, 10, 5)
	require.NoError(t, err)
	require.NoError(t, eng.Login(context.Background(), sess, "alice", "pw"))

	_, err = eng.Book(context.Background(), sess, 0)
	var noSuch *engine.NoSuchItineraryError
	require.ErrorAs(t, err, &noSuch)
	assert.Equal(t, 0, noSuch.Index)
}

func TestCreateCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := new(mocks.MockStore)
		store.On("InsertUser", mock.Anything, "alice", mock.Anything, mock.Anything, 500).Return(nil)
		eng := newTestEngine(store)

		require.NoError(t, eng.CreateCustomer(context.Background(), "alice", "pw", 500))
		store.AssertExpectations(t)
	})

	t.Run("negative balance rejected before touching the store", func(t *testing.T) {
		store := new(mocks.MockStore)
		eng := newTestEngine(store)

		err := eng.CreateCustomer(context.Background(), "alice", "pw", -1)

		assert.ErrorIs(t, err, engine.ErrNegativeBalance)
		store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate username is a generic creation failure", func(t *testing.T) {
		store := new(mocks.MockStore)
		store.On("InsertUser", mock.Anything, "alice", mock.Anything, mock.Anything, 500).
			Return(errors.New(`duplicate key value violates unique constraint "users_pkey"`))
		eng := newTestEngine(store)

		err := eng.CreateCustomer(context.Background(), "alice", "pw", 500)

		assert.ErrorIs(t, err, engine.ErrCreateUser)
	})
}
