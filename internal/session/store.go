package session

import (
	"encoding/json"

	"github.com/eventbooker/webclient/config"
	"github.com/eventbooker/webclient/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Store is the single abstraction over the persisted session. Every
// consumer (auth service, guard, handlers) goes through it instead of
// reading cookies directly.
type Store interface {
	Token() string
	IsAuthenticated() bool
	CurrentUser() (*entity.User, bool)
	IsAdmin() bool
	SetSession(token string, user *entity.User)
	ClearSession()
}

// Manager builds per-request stores bound to the request's cookie jar.
type Manager struct {
	ttlDays int
	secure  bool
}

func NewManager(cfg *config.SessionConfig) *Manager {
	ttl := cfg.TTLDays
	if ttl <= 0 {
		ttl = DefaultTTLDays
	}
	return &Manager{ttlDays: ttl, secure: cfg.Secure}
}

func (m *Manager) FromRequest(c *gin.Context) Store {
	return &cookieStore{c: c, ttlDays: m.ttlDays, secure: m.secure}
}

// Secure reports whether cookies issued by this manager carry the Secure
// attribute, so auxiliary cookies (the flash) follow the same policy.
func (m *Manager) Secure() bool {
	return m.secure
}

type cookieStore struct {
	c       *gin.Context
	ttlDays int
	secure  bool
}

func (s *cookieStore) Token() string {
	token, _ := GetCookie(s.c, TokenCookie)
	return token
}

// IsAuthenticated is a presence-only check: it does not validate the
// token's signature or expiry, the API does that on every call.
func (s *cookieStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser parses the persisted user cookie. A corrupt cookie degrades
// to "no user" instead of failing the request.
func (s *cookieStore) CurrentUser() (*entity.User, bool) {
	raw, ok := GetCookie(s.c, UserCookie)
	if !ok || raw == "" {
		return nil, false
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logrus.WithField("cookie", UserCookie).Warnf("discarding corrupt session cookie: %v", err)
		return nil, false
	}
	if user.ID == "" {
		return nil, false
	}
	return &user, true
}

func (s *cookieStore) IsAdmin() bool {
	user, ok := s.CurrentUser()
	return ok && user.IsAdmin()
}

func (s *cookieStore) SetSession(token string, user *entity.User) {
	SetCookie(s.c, TokenCookie, token, s.ttlDays, s.secure)

	payload, err := json.Marshal(user)
	if err != nil {
		logrus.Errorf("failed to encode session user: %v", err)
		return
	}
	SetCookie(s.c, UserCookie, string(payload), s.ttlDays, s.secure)
}

func (s *cookieStore) ClearSession() {
	DeleteCookie(s.c, TokenCookie)
	DeleteCookie(s.c, UserCookie)
}
