package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("bob@b.c")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "bob@b.c", email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue("bob@b.c")
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("bob@b.c")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
