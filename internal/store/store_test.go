package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	ID    string
	Name  string
	IsHot bool
}

func newEntityStore() *Store[entity] {
	return New(func(e entity) string { return e.ID })
}

func fetchOf(items ...entity) func(context.Context) ([]entity, error) {
	return func(context.Context) ([]entity, error) { return items, nil }
}

func TestLoad_ReplacesCollection(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "1"}, entity{ID: "2"})))
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "3"})))
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("1")
	assert.False(t, ok)
}

func TestLoad_DropsDuplicateIdentities(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(
		entity{ID: "1", Name: "first"}, entity{ID: "1", Name: "dup"}, entity{ID: "2"})))
	assert.Equal(t, 2, s.Len())
	got, _ := s.Get("1")
	assert.Equal(t, "first", got.Name)
}

func TestLoad_LaterIssuedLoadWins(t *testing.T) {
	s := newEntityStore()

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Issued first, resolves last.
		_ = s.Load(context.Background(), func(context.Context) ([]entity, error) {
			close(firstStarted)
			<-release
			return []entity{{ID: "stale"}}, nil
		})
	}()

	<-firstStarted
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "fresh"})))
	close(release)
	wg.Wait()

	_, ok := s.Get("fresh")
	assert.True(t, ok, "the later-issued load owns the collection")
	_, ok = s.Get("stale")
	assert.False(t, ok, "the stale response must be discarded")
}

func TestAdd_PrependsServerEntity(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "old"})))

	created, err := s.Add(context.Background(), func(context.Context) (entity, error) {
		// Server assigns the identity.
		return entity{ID: "42", Name: "Amit Kumar"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "42", items[0].ID, "newest entry shows first")
}

func TestAdd_IdentityPresentExactlyOnce(t *testing.T) {
	s := newEntityStore()
	create := func(context.Context) (entity, error) { return entity{ID: "42"}, nil }

	_, err := s.Add(context.Background(), create)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), create)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Len(), "double submit must not duplicate the identity")
}

func TestAdd_FailurePropagatesWithoutMutation(t *testing.T) {
	s := newEntityStore()
	boom := errors.New("validation: name required")

	_, err := s.Add(context.Background(), func(context.Context) (entity, error) {
		return entity{}, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestApplyUpdate_ReplacesInPlace(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "1", Name: "before"}, entity{ID: "2"})))

	updated, err := s.ApplyUpdate(context.Background(), "1", func(context.Context) (entity, error) {
		return entity{ID: "1", Name: "after"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)

	items := s.Items()
	assert.Equal(t, "after", items[0].Name, "order preserved, content replaced")
	assert.Equal(t, 2, s.Len())
}

func TestApplyUpdate_UnknownIdentityIsReported(t *testing.T) {
	s := newEntityStore()
	called := false

	_, err := s.ApplyUpdate(context.Background(), "ghost", func(context.Context) (entity, error) {
		called = true
		return entity{}, nil
	})
	require.ErrorIs(t, err, ErrNoSuchEntity)
	assert.False(t, called, "no request is issued for a logic error")
}

func TestRemove_ThenRemoveAgainIsNoop(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "1"})))

	calls := 0
	remove := func(context.Context) error { calls++; return nil }

	require.NoError(t, s.Remove(context.Background(), "1", remove))
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Remove(context.Background(), "1", remove))
	assert.Equal(t, 1, calls, "second remove is a local no-op")
}

func TestRemove_FailureKeepsEntity(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "1"})))

	err := s.Remove(context.Background(), "1", func(context.Context) error {
		return errors.New("network down")
	})
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestToggle_ServerResponseWins(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "p1", IsHot: false})))

	got, err := s.Toggle(context.Background(), "p1", func(context.Context) (entity, error) {
		return entity{ID: "p1", IsHot: true}, nil
	})
	require.NoError(t, err)
	assert.True(t, got.IsHot)

	local, _ := s.Get("p1")
	assert.True(t, local.IsHot, "local copy reflects the confirmed server value")
}

func TestClose_LateLoadDoesNotMutate(t *testing.T) {
	s := newEntityStore()
	require.NoError(t, s.Load(context.Background(), fetchOf(entity{ID: "kept"})))

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.Load(context.Background(), func(context.Context) ([]entity, error) {
			close(started)
			<-release
			return []entity{{ID: "late"}}, nil
		})
	}()

	<-started
	s.Close()
	close(release)
	require.ErrorIs(t, <-done, ErrClosed)

	// The screen is gone; whatever remains must be what was there.
	_, ok := s.Get("late")
	assert.False(t, ok)
}

func TestClose_MutatorsRejected(t *testing.T) {
	s := newEntityStore()
	s.Close()

	require.ErrorIs(t, s.Load(context.Background(), fetchOf()), ErrClosed)
	_, err := s.Add(context.Background(), func(context.Context) (entity, error) { return entity{ID: "x"}, nil })
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Remove(context.Background(), "x", func(context.Context) error { return nil }), ErrClosed)
}
