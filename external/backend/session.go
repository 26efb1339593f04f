package backend

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/ruralplus/companion-api/schema"
)

var ErrNotAuthenticated = fmt.Errorf("not authenticated")

// Session holds the access token and the authenticated user on behalf of
// the UI shell. The refresh cookie lives in the underlying client's jar.
type Session struct {
	mu sync.Mutex

	client *Client
	token  string
	user   *schema.User
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Login authenticates and loads the account profile.
func (s *Session) Login(ctx context.Context, email, password string) (*schema.User, error) {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.client.Me(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = token.AccessToken
	s.user = user
	s.mu.Unlock()

	log.WithField("email", email).Info("session established")
	return user, nil
}

// Me returns the current account, refreshing the access token once when the
// backend rejects it.
func (s *Session) Me(ctx context.Context) (*schema.User, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		if err := s.Refresh(ctx); err != nil {
			return nil, ErrNotAuthenticated
		}
		s.mu.Lock()
		token = s.token
		s.mu.Unlock()
	}

	user, err := s.client.Me(ctx, token)
	if err != nil {
		if !IsStatus(err, http.StatusUnauthorized) {
			return nil, err
		}
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
		s.mu.Lock()
		token = s.token
		s.mu.Unlock()
		user, err = s.client.Me(ctx, token)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Refresh replaces the access token using the refresh cookie.
func (s *Session) Refresh(ctx context.Context) error {
	token, err := s.client.Refresh(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token.AccessToken
	s.mu.Unlock()
	return nil
}

// Logout invalidates the session and drops local state.
func (s *Session) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return err
}

// Token returns the current access token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

// CurrentUser returns the cached account, nil when logged out.
func (s *Session) CurrentUser() *schema.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

// ExpiresAt reads the access token's exp claim without verifying the
// signature; verification is the backend's job.
func (s *Session) ExpiresAt() (time.Time, bool) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.StandardClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0), true
}

// NeedsRefresh reports whether the access token expires within the window.
func (s *Session) NeedsRefresh(within time.Duration) bool {
	expires, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return time.Until(expires) < within
}
