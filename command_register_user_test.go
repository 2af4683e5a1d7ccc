package auth_test

import (
	"context"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	auth "github.com/goliatone/go-identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validRegistration() auth.RegisterUserMessage {
	return auth.RegisterUserMessage{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
		Phone:    "650-253-0000",
		State:    "CA",
		City:     "Mountain View",
		Street:   "1600 Amphitheatre Pkwy",
		Pincode:  "94043",
	}
}

func TestRegisterUserMessage_Validate(t *testing.T) {
	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, validRegistration().Validate())
	})

	tests := []struct {
		name          string
		mutate        func(*auth.RegisterUserMessage)
		expectedField string
	}{
		{
			name: "empty payload reports name first",
			mutate: func(m *auth.RegisterUserMessage) {
				*m = auth.RegisterUserMessage{}
			},
			expectedField: "name",
		},
		{
			name: "missing email reported before missing password",
			mutate: func(m *auth.RegisterUserMessage) {
				m.Email = ""
				m.Password = ""
			},
			expectedField: "email",
		},
		{
			name: "missing password reported before missing address",
			mutate: func(m *auth.RegisterUserMessage) {
				m.Password = ""
				m.City = ""
			},
			expectedField: "password",
		},
		{
			name: "missing pincode reported last",
			mutate: func(m *auth.RegisterUserMessage) {
				m.Pincode = ""
			},
			expectedField: "pincode",
		},
		{
			name: "malformed email",
			mutate: func(m *auth.RegisterUserMessage) {
				m.Email = "not-an-email"
			},
			expectedField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validRegistration()
			tt.mutate(&msg)

			err := msg.Validate()

			assert.Error(t, err)
			assert.True(t, auth.IsValidationError(err))

			var richErr *goerrors.Error
			assert.True(t, goerrors.As(err, &richErr))
			assert.Equal(t, tt.expectedField, richErr.Metadata["field"])
		})
	}
}

func TestRegisterUserHandler_Execute(t *testing.T) {
	t.Run("registers a new user", func(t *testing.T) {
		store := newFakeUserStore()
		handler := auth.NewRegisterUserHandler(store).WithLogger(&testLogger{})

		user, err := handler.Execute(context.Background(), validRegistration())

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, auth.RoleStandard, user.Role)
		assert.Equal(t, "Test User", user.Name)
		assert.Equal(t, "CA", user.Address.State)
		assert.Equal(t, "Mountain View", user.Address.City)
		assert.Equal(t, "94043", user.Address.Pincode)

		// the password is only ever persisted as a verifying hash
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, auth.ComparePasswordAndHash("password123", user.PasswordHash))
	})

	t.Run("normalizes phone to E.164", func(t *testing.T) {
		store := newFakeUserStore()
		handler := auth.NewRegisterUserHandler(store)

		user, err := handler.Execute(context.Background(), validRegistration())

		assert.NoError(t, err)
		assert.Equal(t, "+16502530000", user.Phone)
	})

	t.Run("keeps unparseable phone as provided", func(t *testing.T) {
		store := newFakeUserStore()
		handler := auth.NewRegisterUserHandler(store)

		msg := validRegistration()
		msg.Phone = "ext. 4711"

		user, err := handler.Execute(context.Background(), msg)

		assert.NoError(t, err)
		assert.Equal(t, "ext. 4711", user.Phone)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := newFakeUserStore()
		store.seed(&auth.User{Email: "test@example.com", Name: "Existing"})

		handler := auth.NewRegisterUserHandler(store)

		user, err := handler.Execute(context.Background(), validRegistration())

		assert.Nil(t, user)
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("maps unique constraint race to duplicate email", func(t *testing.T) {
		store := newFakeUserStore()
		// the pre-check sees no record but the insert loses the race
		store.insertErr = fmt.Errorf("UNIQUE constraint failed: users.email")

		handler := auth.NewRegisterUserHandler(store)

		user, err := handler.Execute(context.Background(), validRegistration())

		assert.Nil(t, user)
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		store := newFakeUserStore()
		handler := auth.NewRegisterUserHandler(store)

		user, err := handler.Execute(context.Background(), auth.RegisterUserMessage{})

		assert.Nil(t, user)
		assert.True(t, auth.IsValidationError(err))
		assert.Empty(t, store.records)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		store := newFakeUserStore()
		handler := auth.NewRegisterUserHandler(store)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		user, err := handler.Execute(ctx, validRegistration())

		assert.Nil(t, user)
		assert.Error(t, err)
	})
}
