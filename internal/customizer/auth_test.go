package customizer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RividuPesara/apex-auto/internal/customizer"
)

type fakeProfileFetcher struct {
	user *customizer.UserInfo
	err  error
}

func (f fakeProfileFetcher) Profile(ctx context.Context) (*customizer.UserInfo, error) {
	return f.user, f.err
}

func TestAuthSession_HydrateWithNoStoredToken(t *testing.T) {
	a := customizer.NewAuthSession(&customizer.MemoryTokenStore{})

	err := a.Hydrate(context.Background(), fakeProfileFetcher{})
	require.NoError(t, err)
	require.False(t, a.Authenticated())
	require.Empty(t, a.Token())
}

func TestAuthSession_HydrateVerifiesStoredToken(t *testing.T) {
	store := &customizer.MemoryTokenStore{}
	require.NoError(t, store.Save("stored-token"))

	a := customizer.NewAuthSession(store)
	fetcher := fakeProfileFetcher{user: &customizer.UserInfo{ID: "u1", Name: "Driver", Email: "driver@apex.test"}}

	require.NoError(t, a.Hydrate(context.Background(), fetcher))
	require.True(t, a.Authenticated())
	require.Equal(t, "stored-token", a.Token())
	require.Equal(t, "Driver", a.User().Name)
}

func TestAuthSession_HydrateDiscardsRejectedToken(t *testing.T) {
	store := &customizer.MemoryTokenStore{}
	require.NoError(t, store.Save("expired-token"))

	a := customizer.NewAuthSession(store)
	fetcher := fakeProfileFetcher{err: &customizer.APIError{StatusCode: 401, Message: "Invalid or expired token"}}

	require.NoError(t, a.Hydrate(context.Background(), fetcher))
	require.False(t, a.Authenticated())
	require.Empty(t, a.Token())

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, persisted, "rejected token should be wiped from the store")
}

func TestAuthSession_HydrateKeepsTokenOnTransportFailure(t *testing.T) {
	store := &customizer.MemoryTokenStore{}
	require.NoError(t, store.Save("maybe-valid"))

	a := customizer.NewAuthSession(store)
	fetcher := fakeProfileFetcher{err: errors.New("connection refused")}

	err := a.Hydrate(context.Background(), fetcher)
	require.Error(t, err)
	require.False(t, a.Authenticated(), "unverified token does not authenticate")

	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.Equal(t, "maybe-valid", persisted, "token survives for a retry")
}

func TestAuthSession_SetCredentialsAndClear(t *testing.T) {
	store := &customizer.MemoryTokenStore{}
	a := customizer.NewAuthSession(store)

	require.NoError(t, a.SetCredentials("fresh-token", customizer.UserInfo{ID: "u2", Name: "Owner"}))
	require.True(t, a.Authenticated())
	require.Equal(t, "fresh-token", a.Token())

	persisted, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "fresh-token", persisted)

	require.NoError(t, a.Clear())
	require.False(t, a.Authenticated())
	require.Nil(t, a.User())

	persisted, err = store.Load()
	require.NoError(t, err)
	require.Empty(t, persisted)
}
