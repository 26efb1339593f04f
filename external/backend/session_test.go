package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/schema"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "user-1",
		ExpiresAt: expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

type authBackend struct {
	t            *testing.T
	accessToken  string
	meFailsUntil int
	meCalls      int
	refreshCalls int
}

func (b *authBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req schema.LoginRequest
		assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "rt-1", Path: "/"})
		json.NewEncoder(w).Encode(schema.TokenResponse{AccessToken: b.accessToken})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		b.refreshCalls++
		cookie, err := r.Cookie("refresh_token")
		if err != nil || cookie.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "refresh cookie ausente"})
			return
		}
		json.NewEncoder(w).Encode(schema.TokenResponse{AccessToken: b.accessToken})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.meCalls++
		if b.meCalls <= b.meFailsUntil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "token expirado"})
			return
		}
		assert.Equal(b.t, "Bearer "+b.accessToken, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(schema.User{Name: "Maria", Email: "maria@example.com", CPF: "52998224725"})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestSessionLogin(t *testing.T) {
	b := &authBackend{t: t, accessToken: signedToken(t, time.Now().Add(time.Hour))}
	client, _ := newTestClient(t, b.handler())
	session := NewSession(client)

	user, err := session.Login(context.Background(), "maria@example.com", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, b.accessToken, session.Token())
	assert.NotNil(t, session.CurrentUser())
}

func TestSessionMeRefreshRetry(t *testing.T) {
	b := &authBackend{t: t, accessToken: signedToken(t, time.Now().Add(time.Hour)), meFailsUntil: 1}
	client, _ := newTestClient(t, b.handler())
	session := NewSession(client)

	_, err := session.Login(context.Background(), "maria@example.com", "s3cret")
	assert.Error(t, err, "first me call is rejected")

	// cookie jar now has the refresh token; Me should refresh and retry
	user, err := session.Me(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, 1, b.refreshCalls)
}

func TestSessionExpiry(t *testing.T) {
	expires := time.Now().Add(2 * time.Minute)
	b := &authBackend{t: t, accessToken: signedToken(t, expires)}
	client, _ := newTestClient(t, b.handler())
	session := NewSession(client)

	_, ok := session.ExpiresAt()
	assert.False(t, ok, "no token before login")

	_, err := session.Login(context.Background(), "maria@example.com", "s3cret")
	assert.NoError(t, err)

	got, ok := session.ExpiresAt()
	assert.True(t, ok)
	assert.Equal(t, expires.Unix(), got.Unix())

	assert.True(t, session.NeedsRefresh(5*time.Minute))
	assert.False(t, session.NeedsRefresh(time.Minute))
}

func TestSessionLogout(t *testing.T) {
	b := &authBackend{t: t, accessToken: signedToken(t, time.Now().Add(time.Hour))}
	client, _ := newTestClient(t, b.handler())
	session := NewSession(client)

	_, err := session.Login(context.Background(), "maria@example.com", "s3cret")
	assert.NoError(t, err)

	assert.NoError(t, session.Logout(context.Background()))
	assert.Equal(t, "", session.Token())
	assert.Nil(t, session.CurrentUser())
}
