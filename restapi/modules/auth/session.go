package auth

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionUser is the identity slice of a session used for authorization
// decisions.
type SessionUser struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Session is the per-request view materialized from a validated token.
// It is never persisted; consumers only read it.
type Session struct {
	User    SessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
}

// SessionCache memoizes one session resolution. Within its scope the
// underlying resolver runs at most once and every reader observes the same
// value; there is no invalidation, freshness comes from the scope boundary.
type SessionCache struct {
	once    sync.Once
	resolve func() (*Session, error)
	session *Session
	err     error
}

// NewSessionCache wraps resolve in a single-resolution cache.
func NewSessionCache(resolve func() (*Session, error)) *SessionCache {
	return &SessionCache{resolve: resolve}
}

// Get returns the cached session, resolving it on first call.
func (c *SessionCache) Get() (*Session, error) {
	c.once.Do(func() {
		c.session, c.err = c.resolve()
	})
	return c.session, c.err
}

const sessionCacheKey = "session_cache"

// CurrentSession resolves the session for the current request through a
// request-scoped cache, so repeated reads within one request decode the
// token only once. A missing or invalid token yields a nil session
// (anonymous), not an error.
func CurrentSession(c *fiber.Ctx) (*Session, error) {
	cache, ok := c.Locals(sessionCacheKey).(*SessionCache)
	if !ok {
		token := c.Cookies(AuthCookieName)
		cache = NewSessionCache(func() (*Session, error) {
			return resolveSession(token)
		})
		c.Locals(sessionCacheKey, cache)
	}
	return cache.Get()
}

// resolveSession decodes and validates the token and shapes the session
// view. Invalid or expired tokens are treated as guest access, matching the
// cookie-clearing behavior of a failed refresh.
func resolveSession(token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return nil, nil
	}

	session := ShapeSession(SessionIn{Session: &Session{}, Claims: claims})
	if session.User.ID == "" {
		return nil, nil
	}
	return session, nil
}
