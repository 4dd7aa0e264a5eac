package memstore

import (
	"context"
	"testing"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	user := domainauth.UserIdentity{ID: 1, Username: "u", Roles: []domainauth.Role{domainauth.RoleStudent}}
	require.NoError(t, s.WriteSession(ctx, "T", user))

	token, err := s.ReadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T", token)

	got, err := s.ReadUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.WriteSession(ctx, "T", domainauth.UserIdentity{Username: "u"}))
	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.ClearSession(ctx))

	token, _ := s.ReadToken(ctx)
	user, _ := s.ReadUser(ctx)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestStore_SeedCorruptUser(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed("T", []byte("{not json"))

	token, err := s.ReadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T", token)

	user, err := s.ReadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}
