// Package session keeps the signed-in user for a bearer token. It replaces
// an ambient auth context with explicit state: Login populates it, Logout
// clears it and a 401 from the API evicts it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/redisx"
	"github.com/iliyamo/club-dining/internal/utils"
)

// ErrCredentialsRequired is returned when email or password is blank.
var ErrCredentialsRequired = errors.New("email and password required")

// Session is a token together with the user it belongs to.
type Session struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Manager resolves tokens to users, caching results in Redis when available.
type Manager struct {
	api *apiclient.Client
	rdb *redis.Client
	ttl time.Duration
}

// NewManager builds a Manager. rdb may be nil.
func NewManager(api *apiclient.Client, rdb *redis.Client, ttl time.Duration) *Manager {
	if api == nil {
		panic("nil api client passed to session.NewManager")
	}
	if ttl <= 0 {
		ttl = redisx.TTLSession
	}
	return &Manager{api: api, rdb: rdb, ttl: ttl}
}

func key(token string) string { return fmt.Sprintf(redisx.KeySession, utils.HashToken(token)) }

// Login signs in against the API and returns the new session.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	lr, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	u, err := m.api.WithToken(lr.AccessToken).Me(ctx)
	if err != nil {
		return nil, err
	}
	m.store(ctx, lr.AccessToken, u)
	return &Session{Token: lr.AccessToken, User: u}, nil
}

// Restore returns the user for token. A 401 from the API evicts any cached
// entry and yields apiclient.ErrSessionExpired.
func (m *Manager) Restore(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apiclient.ErrSessionExpired
	}
	if u := m.cached(ctx, token); u != nil {
		return u, nil
	}
	u, err := m.api.WithToken(token).Me(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrSessionExpired) {
			m.Logout(ctx, token)
		}
		return nil, err
	}
	m.store(ctx, token, u)
	return u, nil
}

// Logout forgets the session locally. The API is not called: tokens simply
// expire there.
func (m *Manager) Logout(ctx context.Context, token string) {
	if m.rdb == nil || token == "" {
		return
	}
	if err := m.rdb.Del(ctx, key(token)).Err(); err != nil {
		log.Printf("session: evict failed: %v", err)
	}
}

// Client returns an API client bound to token.
func (m *Manager) Client(token string) *apiclient.Client { return m.api.WithToken(token) }

func (m *Manager) cached(ctx context.Context, token string) *model.User {
	if m.rdb == nil {
		return nil
	}
	raw, err := m.rdb.Get(ctx, key(token)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("session: cache read failed: %v", err)
		}
		return nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

func (m *Manager) store(ctx context.Context, token string, u *model.User) {
	if m.rdb == nil || u == nil {
		return
	}
	buf, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := m.rdb.Set(ctx, key(token), string(buf), m.ttl).Err(); err != nil {
		log.Printf("session: cache write failed: %v", err)
	}
}
