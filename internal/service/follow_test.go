package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toptop/internal/model"
)

func TestFollowService_SelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddAccount("alice", "Alice")

	_, err := env.follows.Toggle(context.Background(), ptr("alice"), "alice", true)

	assert.ErrorIs(t, err, model.ErrCannotFollowSelf)
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
	assert.Zero(t, env.store.FollowRows())
}

func TestFollowService_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.AddAccount("alice", "Alice")
	env.store.AddAccount("bob", "Bob")

	ack, err := env.follows.Toggle(ctx, ptr("alice"), "bob", true)
	require.NoError(t, err)
	assert.Equal(t, "OK", ack.Message)
	assert.Equal(t, 1, env.store.FollowRows())

	_, err = env.follows.Toggle(ctx, ptr("alice"), "bob", true)
	assert.ErrorIs(t, err, model.ErrAlreadyFollowing)

	_, err = env.follows.Toggle(ctx, ptr("alice"), "bob", false)
	require.NoError(t, err)
	assert.Zero(t, env.store.FollowRows())

	_, err = env.follows.Toggle(ctx, ptr("alice"), "bob", false)
	assert.ErrorIs(t, err, model.ErrNotFollowing)
}

func TestFollowService_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.AddAccount("alice", "Alice")

	_, err := env.follows.Toggle(ctx, nil, "alice", true)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = env.follows.Toggle(ctx, ptr("alice"), "", true)
	assert.ErrorIs(t, err, model.ErrFollowingRequired)

	_, err = env.follows.Toggle(ctx, ptr("alice"), "ghost", true)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	_, err = env.follows.Toggle(ctx, ptr("stranger"), "alice", true)
	assert.ErrorIs(t, err, model.ErrViewerNotRegistered)
}
