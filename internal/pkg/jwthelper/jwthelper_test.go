package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estadio/stadium-api/internal/domain"
)

var key = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	identity := domain.Identity{
		ID:     7,
		Name:   "ana",
		Scopes: domain.Scopes{domain.ScopeNotMember, domain.ScopeMember},
	}

	token, err := GenerateToken(key, 24*time.Hour, identity)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(key, time.Hour, domain.Identity{ID: 1, Name: "ana"})
	require.NoError(t, err)

	expired, err := GenerateToken(key, -time.Minute, domain.Identity{ID: 1, Name: "ana"})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   []byte
		token string
	}{
		{name: "wrong key", key: []byte("other"), token: valid},
		{name: "expired", key: key, token: expired},
		{name: "unsigned", key: key, token: none},
		{name: "garbage", key: key, token: "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.key, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
