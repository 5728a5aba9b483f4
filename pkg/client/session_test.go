package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viva/internal/domain/entity"
)

func newTestSession(auth *fakeAuth, favorites *fakeFavoritesAPI, kv KeyValueStore) (*Session, *countingTokens) {
	tokens := &countingTokens{}
	s := NewSession(auth, tokens,
		NewFavoritesStore(favorites),
		NewCommentsStore(&fakeCommentsAPI{items: map[string][]*entity.Comentario{}}),
		NewRecentlyViewed(kv),
	)
	return s, tokens
}

func TestSessionSignInLoadsUserState(t *testing.T) {
	kv := newMemKV()
	kv.data["@recentlyViewed_u1"] = []byte(`[{"id":"r1"}]`)
	favorites := &fakeFavoritesAPI{server: []*entity.Anuncio{listing("a1")}}

	s, tokens := newTestSession(&fakeAuth{uid: "u1"}, favorites, kv)

	uid, err := s.SignIn(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", uid)
	assert.True(t, s.SignedIn())
	assert.Equal(t, 1, tokens.forced)
	assert.Equal(t, []string{"a1"}, ids(s.Favorites.Favorites()))
	assert.Equal(t, []string{"r1"}, ids(s.Recent.Items()))
}

func TestSessionSignInSurvivesFavoritesFailure(t *testing.T) {
	favorites := &fakeFavoritesAPI{listErr: errServer}
	s, _ := newTestSession(&fakeAuth{uid: "u1"}, favorites, newMemKV())

	_, err := s.SignIn(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	assert.True(t, s.SignedIn())
	assert.Empty(t, s.Favorites.Favorites())
}

func TestSessionSignInFailure(t *testing.T) {
	s, tokens := newTestSession(&fakeAuth{err: errServer}, &fakeFavoritesAPI{}, newMemKV())

	_, err := s.SignIn(context.Background(), "ana@example.com", "wrong")

	assert.ErrorIs(t, err, errServer)
	assert.False(t, s.SignedIn())
	assert.Zero(t, tokens.calls)
}

func TestSessionSignOutClearsState(t *testing.T) {
	auth := &fakeAuth{uid: "u1"}
	favorites := &fakeFavoritesAPI{server: []*entity.Anuncio{listing("a1")}}
	s, _ := newTestSession(auth, favorites, newMemKV())

	_, err := s.SignIn(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, s.Recent.Add(listing("r1")))

	s.SignOut()

	assert.False(t, s.SignedIn())
	assert.Equal(t, 1, auth.signOuts)
	assert.Empty(t, s.Favorites.Favorites())
	assert.Empty(t, s.Comments.Comments())
	assert.Empty(t, s.Recent.Items())
}
