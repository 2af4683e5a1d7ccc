package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrepareUserDefaults(t *testing.T) {
	t.Run("fills id, role, and normalizes email", func(t *testing.T) {
		record := &User{Email: "  Mixed.Case@Example.COM "}

		prepareUserDefaults(record)

		assert.NotEqual(t, uuid.Nil, record.ID)
		assert.Equal(t, RoleStandard, record.Role)
		assert.Equal(t, "mixed.case@example.com", record.Email)
	})

	t.Run("keeps existing id and role", func(t *testing.T) {
		id := uuid.New()
		record := &User{ID: id, Role: RoleAdmin, Email: "admin@example.com"}

		prepareUserDefaults(record)

		assert.Equal(t, id, record.ID)
		assert.Equal(t, RoleAdmin, record.Role)
	})

	t.Run("tolerates nil", func(t *testing.T) {
		assert.NotPanics(t, func() { prepareUserDefaults(nil) })
	})
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "sqlite unique violation",
			err:      errors.New("UNIQUE constraint failed: users.email"),
			expected: true,
		},
		{
			name:     "modernc sqlite unique violation",
			err:      errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			expected: true,
		},
		{
			name:     "postgres unique violation",
			err:      errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`),
			expected: true,
		},
		{
			name:     "unrelated constraint",
			err:      errors.New("NOT NULL constraint failed: users.name"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isDuplicateKeyError(tt.err))
		})
	}
}
