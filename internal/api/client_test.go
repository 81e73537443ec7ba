package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohanvaze/brokerdesk/internal/db"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return session.New(session.NewStore(database))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := newTestSession(t)
	c := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, sess, NoopObserver{})
	return c, sess
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	require.NoError(t, sess.Establish("tok-xyz", domain.User{ID: "u1", Role: domain.RoleBroker}))

	_, err := c.Properties().List(context.Background(), PropertyFilters{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestNoBearerWhenSignedOut(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"t","token_type":"bearer","user":{"id":"u1","role":"broker"}}`))
	}))

	_, err := c.Auth().Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorized_ClearsSessionExactlyOnce(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, sess.Establish("expired", domain.User{ID: "u1"}))

	_, err := c.Customers().List(context.Background(), CustomerFilters{})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, sess.Authenticated(), "session torn down by the interception point")

	// Further 401s from other in-flight requests find the teardown
	// already done; Invalidate reports no further work.
	_, err = c.Deals().List(context.Background(), DealFilters{})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, sess.Invalidate(), "teardown must have happened exactly once already")
}

func TestNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Property not found"}`))
	}))

	_, err := c.Properties().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsStale(err))
}

func TestValidationError_CarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"phone number is invalid"}`))
	}))

	_, err := c.Customers().Create(context.Background(), domain.Customer{Name: "Amit"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "phone number is invalid", ve.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, ve.Status)
}

func TestServerError_NeverExposesInternals(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"Traceback (most recent call last): ..."}`))
	}))

	_, err := c.Deals().List(context.Background(), DealFilters{})
	require.ErrorIs(t, err, ErrServer)
	assert.NotContains(t, err.Error(), "Traceback")
}

func TestNetworkError(t *testing.T) {
	sess := newTestSession(t)
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 2 * time.Second}, sess, NoopObserver{})

	_, err := c.Properties().List(context.Background(), PropertyFilters{})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestTimeout(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	c.cfg.Timeout = 50 * time.Millisecond

	_, err := c.Properties().List(context.Background(), PropertyFilters{})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNoAutomaticRetries(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Customers().List(context.Background(), CustomerFilters{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestToggleHot_ServerValueWins(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/properties/p1/hot", r.URL.Path)
		// Server declines the flip: the flag comes back false.
		w.Write([]byte(`{"id":"p1","title":"Villa","is_hot":false}`))
	}))
	require.NoError(t, sess.Establish("tok", domain.User{ID: "u1"}))

	p, err := c.Properties().ToggleHot(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, p.IsHot)
}

func TestQueryParamsPassedThrough(t *testing.T) {
	var query string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	_, err := c.Properties().List(context.Background(), PropertyFilters{Area: "Baner", Status: "For Sale"})
	require.NoError(t, err)
	assert.Contains(t, query, "area=Baner")
	assert.Contains(t, query, "status=For+Sale")
}

func TestClientSideValidationRejectsBeforeRequest(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.Properties().Create(context.Background(), domain.Property{Title: "Villa", Bedrooms: -2, Owner: domain.PropertyOwner{Name: "Raj"}})
	_, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, int32(0), calls.Load(), "invalid draft must not reach the server")
}

func TestNotificationCreateRoundTrip(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		w.Write([]byte(`{"id":"n1","title":"New lead","message":"Asha asked about Sunrise Villa","is_read":false}`))
	}))
	require.NoError(t, sess.Establish("tok", domain.User{ID: "u1"}))

	n, err := c.Notifications().Create(context.Background(), domain.Notification{Title: "New lead"})
	require.NoError(t, err)
	assert.Equal(t, "n1", n.ID)
	assert.False(t, n.IsRead)
}

func TestContextCancellationIsNotATimeout(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Events().Today(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}
