package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour), mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := Record{UserID: 42, Subject: "g-123", Email: "user@example.com", Name: "User", Picture: "https://p/x.jpg"}
	token, err := store.Create(ctx, rec)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestStoreTokensAreUnique(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, Record{UserID: 1})
	require.NoError(t, err)
	b, err := store.Create(ctx, Record{UserID: 1})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStoreGetUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Record{UserID: 7})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, token))
}

func TestStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Record{UserID: 9})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, _ := newTestStore(t)

	r := gin.New()
	r.Use(WithUser(store))
	r.GET("/studio", RequireLogin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/studio", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestRequireLoginPassesAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, _ := newTestStore(t)

	token, err := store.Create(context.Background(), Record{UserID: 5, Email: "a@b.com"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(WithUser(store))
	r.GET("/studio", RequireLogin(), func(c *gin.Context) {
		rec := CurrentUser(c)
		require.NotNil(t, rec)
		c.JSON(http.StatusOK, gin.H{"email": rec.Email})
	})

	req := httptest.NewRequest(http.MethodGet, "/studio", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "a@b.com")
}

func TestWithUserIgnoresStaleCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, _ := newTestStore(t)

	r := gin.New()
	r.Use(WithUser(store))
	r.GET("/", func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.JSON(http.StatusOK, gin.H{"logged_in": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-token"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "false")
}

func TestStoreGetSlidingExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Record{UserID: 3})
	require.NoError(t, err)

	// Touch the session halfway through its TTL, then advance past the
	// original deadline. The refreshed TTL must keep it alive.
	mr.FastForward(30 * time.Minute)
	_, err = store.Get(ctx, token)
	require.NoError(t, err)

	mr.FastForward(45 * time.Minute)
	_, err = store.Get(ctx, token)
	assert.NoError(t, err)

	if errors.Is(err, ErrNotFound) {
		t.Error("sliding expiry should have kept the session alive")
	}
}
