//go:build unit

package user_test

import (
	"strings"
	"testing"

	"island-eats/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "valid email", input: "customer@example.com", want: "customer@example.com"},
		{name: "uppercase is normalized", input: "Customer@Example.COM", want: "customer@example.com"},
		{name: "surrounding whitespace is trimmed", input: "  customer@example.com  ", want: "customer@example.com"},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "customer.example.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "customer@", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, email.String())
		})
	}
}

func TestNewCredentials(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		creds, err := user.NewCredentials("customer@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "customer@example.com", creds.Email.String())
	})

	t.Run("password shorter than 8 characters is rejected", func(t *testing.T) {
		_, err := user.NewCredentials("customer@example.com", strings.Repeat("a", 7))
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})

	t.Run("invalid email is rejected before the password check", func(t *testing.T) {
		_, err := user.NewCredentials("not-an-email", "password123")
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})
}
