package services

import (
	"context"
	"testing"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	tokens, _ := newTestTokenService(t)
	s := NewUserService(store, tokens)
	ctx := context.Background()

	user, err := s.Register(ctx, &core.User{Username: "alice", Nickname: "Alice"}, "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = s.Register(ctx, &core.User{Username: "alice"}, "other")
	assert.Equal(t, core.ErrConflict, err)

	_, err = s.Register(ctx, &core.User{Username: "bob"}, "")
	assert.Equal(t, core.ErrBadRequest, err)

	logged, token, expiresAt, err := s.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", logged.Username)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())
	assert.NotNil(t, logged.LastLogin)

	_, _, _, err = s.Login(ctx, "alice", "wrong")
	assert.Equal(t, core.ErrInvalidPassword, err)

	_, _, _, err = s.Login(ctx, "nobody", "secret123")
	assert.Equal(t, core.ErrInvalidPassword, err)
}

func TestUserService_LoginDisabled(t *testing.T) {
	store := newFakeUserStore()
	tokens, _ := newTestTokenService(t)
	s := NewUserService(store, tokens)
	ctx := context.Background()

	disabled := false
	_, err := s.Register(ctx, &core.User{Username: "carol", IsActive: &disabled}, "secret123")
	require.NoError(t, err)

	_, _, _, err = s.Login(ctx, "carol", "secret123")
	assert.Equal(t, core.ErrUserDisabled, err)
}

func TestUserService_Logout(t *testing.T) {
	store := newFakeUserStore()
	tokens, _ := newTestTokenService(t)
	s := NewUserService(store, tokens)
	ctx := context.Background()

	_, err := s.Register(ctx, &core.User{Username: "alice"}, "secret123")
	require.NoError(t, err)
	_, token, _, err := s.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	current, err := tokens.Parse(ctx, token)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, current))

	revoked, err := tokens.IsRevoked(ctx, current)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.Equal(t, core.ErrUnauthorized, s.Logout(ctx, &core.AuthenticatedUser{}))
}

func TestUserService_ChangePassword(t *testing.T) {
	store := newFakeUserStore()
	tokens, _ := newTestTokenService(t)
	s := NewUserService(store, tokens)
	ctx := context.Background()

	user, err := s.Register(ctx, &core.User{Username: "alice"}, "secret123")
	require.NoError(t, err)

	assert.Equal(t, core.ErrInvalidPassword, s.ChangePassword(ctx, user.ID, "bad", "newpass1"))
	require.NoError(t, s.ChangePassword(ctx, user.ID, "secret123", "newpass1"))

	_, _, _, err = s.Login(ctx, "alice", "newpass1")
	assert.NoError(t, err)
}

func TestUserService_UpdateRevokesTokens(t *testing.T) {
	store := newFakeUserStore()
	tokens, _ := newTestTokenService(t)
	now := time.Now()
	tokens.now = func() time.Time { return now }
	s := NewUserService(store, tokens)
	ctx := context.Background()

	user, err := s.Register(ctx, &core.User{Username: "dave", Nickname: "Dave"}, "secret123")
	require.NoError(t, err)
	_, token, _, err := s.Login(ctx, "dave", "secret123")
	require.NoError(t, err)
	authed, err := tokens.Parse(ctx, token)
	require.NoError(t, err)

	isRevoked := func() bool {
		revoked, err := tokens.IsRevoked(ctx, authed)
		require.NoError(t, err)
		return revoked
	}

	// 只修改昵称不影响已签发的token
	changed := *user
	changed.Nickname = "David"
	_, err = s.Update(ctx, &changed)
	require.NoError(t, err)
	assert.False(t, isRevoked())

	// 禁用用户后token失效
	disabled := false
	changed.IsActive = &disabled
	_, err = s.Update(ctx, &changed)
	require.NoError(t, err)
	assert.True(t, isRevoked())
}

func TestUserService_DeleteRevokesTokens(t *testing.T) {
	store := newFakeUserStore()
	tokens, _ := newTestTokenService(t)
	s := NewUserService(store, tokens)
	ctx := context.Background()

	user, err := s.Register(ctx, &core.User{Username: "erin"}, "secret123")
	require.NoError(t, err)
	_, token, _, err := s.Login(ctx, "erin", "secret123")
	require.NoError(t, err)
	authed, err := tokens.Parse(ctx, token)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, user))
	revoked, err := tokens.IsRevoked(ctx, authed)
	require.NoError(t, err)
	assert.True(t, revoked)
}
