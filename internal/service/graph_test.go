package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewsOneWay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	f.store.AddFollow(1, 2)

	subs, err := f.svc.Subscribers(ctx, 2, f.user(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(subs))
	assert.True(t, subs[0].IsFollower)
	assert.False(t, subs[0].IsFollowing)

	subscriptions, err := f.svc.Subscriptions(ctx, 1, f.user(1))
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(subscriptions))

	for _, id := range []int64{1, 2} {
		friends, err := f.svc.Friends(ctx, id, f.user(id))
		require.NoError(t, err)
		assert.Empty(t, friends)
	}
}

func TestViewsMutual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	f.store.AddFollow(1, 2)
	f.store.AddFollow(2, 1)

	friends, err := f.svc.Friends(ctx, 1, f.user(1))
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(friends))

	friends, err = f.svc.Friends(ctx, 2, f.user(1))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(friends))

	subs, err := f.svc.Subscribers(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, subs)

	subscriptions, err := f.svc.Subscriptions(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, subscriptions)
}

func TestViewsAnnotateForThirdPartyViewer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 4)
	f.store.AddFollow(2, 1)
	f.store.AddFollow(3, 1)
	f.store.AddFollow(4, 2)
	f.store.AddFollow(4, 3)
	f.store.AddFollow(3, 4)

	subs, err := f.svc.Subscribers(ctx, 1, f.user(4))
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3}, ids(subs))

	assert.False(t, subs[0].IsFollower)
	assert.True(t, subs[0].IsFollowing)
	assert.True(t, subs[1].IsFollower)
	assert.True(t, subs[1].IsFollowing)
}

func TestViewsUnknownSubject(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.svc.Friends(context.Background(), 42, f.user(1))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAnnotateIsBatched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)
	f.store.AddFollow(1, 2)
	f.store.AddFollow(3, 1)

	users, err := f.repo.User.List(ctx)
	require.NoError(t, err)

	before := f.store.Lookups()
	annotated, err := f.svc.Annotate(ctx, users, f.user(1))
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Lookups()-before, "one edge lookup for the whole collection")

	require.Len(t, annotated, 5)
	assert.True(t, annotated[1].IsFollowing)
	assert.True(t, annotated[2].IsFollower)

	before = f.store.Lookups()
	anonymous, err := f.svc.Annotate(ctx, users, nil)
	require.NoError(t, err)
	assert.Equal(t, before, f.store.Lookups(), "anonymous viewers need no lookups")
	for _, a := range anonymous {
		assert.False(t, a.IsFollower)
		assert.False(t, a.IsFollowing)
	}
}
