package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer   abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("dev-token", Identity{UID: "dev", Email: "dev@example.com", DisplayName: "Dev"})

	who, err := p.Identify(context.Background(), "dev-token")
	require.NoError(t, err)
	assert.Equal(t, "dev", who.UID)
	assert.Equal(t, "Dev", who.DisplayName)

	_, err = p.Identify(context.Background(), "other")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	empty := NewStaticProvider("", Identity{UID: "dev"})
	_, err = empty.Identify(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDenyAll(t *testing.T) {
	_, err := DenyAll{}.Identify(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), &Identity{UID: "u1"})
	who, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", who.UID)

	ctx = WithIdentity(context.Background(), &Identity{})
	_, ok = FromContext(ctx)
	assert.False(t, ok, "identity without uid is no identity")
}

type fakeValidator struct {
	claims interface{}
	err    error
}

func (f fakeValidator) ValidateToken(context.Context, string) (interface{}, error) {
	return f.claims, f.err
}

func TestAuth0ProviderIdentify(t *testing.T) {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|42"},
		CustomClaims:     &Auth0Claims{Email: "a@b.c", Name: "Asha"},
	}
	p := &Auth0Provider{validator: fakeValidator{claims: claims}}

	who, err := p.Identify(context.Background(), "jwt")
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "auth0|42", Email: "a@b.c", DisplayName: "Asha"}, who)

	_, err = p.Identify(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	rejecting := &Auth0Provider{validator: fakeValidator{err: errors.New("expired")}}
	_, err = rejecting.Identify(context.Background(), "jwt")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestNewAuth0Provider(t *testing.T) {
	p, err := NewAuth0Provider("tenant.auth0.com", "https://api.fincalc")
	require.NoError(t, err)
	assert.NotNil(t, p)
}
