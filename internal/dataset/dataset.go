// Package dataset loads the collections every screen relies on (reservations,
// menu, rooms, tables, members, schema) as one snapshot per user.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/redisx"
)

// Collection names, also used as keys in Snapshot.Failures.
const (
	Reservations = "reservations"
	MenuItems    = "menu_items"
	DiningRooms  = "dining_rooms"
	Tables       = "tables"
	Members      = "members"
	Schema       = "schema"
)

// Snapshot is everything fetched for one user at one moment. A collection
// that failed to load is empty and named in Failures.
type Snapshot struct {
	Reservations []model.Reservation `json:"reservations"`
	MenuItems    []model.MenuItem    `json:"menu_items"`
	DiningRooms  []model.DiningRoom  `json:"dining_rooms"`
	Tables       []model.Table       `json:"tables"`
	Members      []model.Member      `json:"members"`
	Schema       json.RawMessage     `json:"schema,omitempty"`
	Failures     map[string]string   `json:"failures,omitempty"`
	FetchedAt    time.Time           `json:"fetched_at"`
}

// MaxPartySize is the schema's party limit, or the default.
func (s *Snapshot) MaxPartySize() int {
	if s == nil {
		return apiclient.DefaultMaxPartySize
	}
	return apiclient.MaxPartySize(s.Schema)
}

// MemberName returns a member's name, falling back to "Member #id" when the
// member is unknown or the member list failed to load.
func (s *Snapshot) MemberName(id int64) string {
	if s != nil {
		for _, m := range s.Members {
			if m.ID == id && m.Name != "" {
				return m.Name
			}
		}
	}
	return fmt.Sprintf("Member #%d", id)
}

// Room returns the dining room with id, or nil.
func (s *Snapshot) Room(id int64) *model.DiningRoom {
	if s == nil {
		return nil
	}
	for i := range s.DiningRooms {
		if s.DiningRooms[i].ID == id {
			return &s.DiningRooms[i]
		}
	}
	return nil
}

// Loader fetches snapshots and caches them in Redis when available.
type Loader struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLoader builds a Loader. rdb may be nil.
func NewLoader(rdb *redis.Client, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = redisx.TTLSnapshot
	}
	return &Loader{rdb: rdb, ttl: ttl}
}

// Load returns the snapshot for userID, fetching it with api when it is not
// cached. Individual collection failures never fail the load.
func (l *Loader) Load(ctx context.Context, api *apiclient.Client, userID int64) (*Snapshot, error) {
	k, cacheable := l.key(ctx, userID)
	if cacheable {
		if raw, err := l.rdb.Get(ctx, k).Bytes(); err == nil {
			var s Snapshot
			if json.Unmarshal(raw, &s) == nil {
				return &s, nil
			}
		}
	}
	s, err := Fetch(ctx, api)
	if err != nil {
		return nil, err
	}
	if cacheable && len(s.Failures) == 0 {
		if buf, err := json.Marshal(s); err == nil {
			if err := l.rdb.Set(ctx, k, buf, l.ttl).Err(); err != nil {
				log.Printf("dataset: cache write failed: %v", err)
			}
		}
	}
	return s, nil
}

// Refresh drops the user's cached snapshot and loads a fresh one.
func (l *Loader) Refresh(ctx context.Context, api *apiclient.Client, userID int64) (*Snapshot, error) {
	l.Invalidate(ctx, userID)
	return l.Load(ctx, api, userID)
}

// Invalidate drops the user's cached snapshot.
func (l *Loader) Invalidate(ctx context.Context, userID int64) {
	if k, ok := l.key(ctx, userID); ok {
		if err := l.rdb.Del(ctx, k).Err(); err != nil {
			log.Printf("dataset: invalidate failed: %v", err)
		}
	}
}

// InvalidateAll moves every user to a new generation so all cached
// snapshots are ignored from now on.
func (l *Loader) InvalidateAll(ctx context.Context) error {
	if l.rdb == nil {
		return nil
	}
	return l.rdb.Incr(ctx, redisx.KeyDataGen).Err()
}

func (l *Loader) key(ctx context.Context, userID int64) (string, bool) {
	if l.rdb == nil {
		return "", false
	}
	gen, err := redisx.Generation(ctx, l.rdb)
	if err != nil {
		log.Printf("dataset: generation read failed: %v", err)
		return "", false
	}
	return fmt.Sprintf(redisx.KeySnapshot, gen, userID), true
}

// Fetch loads every collection concurrently. A failing request is logged and
// recorded in Failures while the rest still load. An expired session fails
// the whole fetch with apiclient.ErrSessionExpired, as does cancellation.
func Fetch(ctx context.Context, api *apiclient.Client) (*Snapshot, error) {
	s := &Snapshot{Failures: map[string]string{}}
	var mu sync.Mutex
	settle := func(name string, err error) error {
		if err == nil {
			return nil
		}
		if errors.Is(err, apiclient.ErrSessionExpired) {
			return err
		}
		log.Printf("dataset: %s failed: %v", name, err)
		mu.Lock()
		s.Failures[name] = apiclient.Message(err)
		mu.Unlock()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Reservations, err = api.ListReservations(gctx)
		return settle(Reservations, err)
	})
	g.Go(func() (err error) {
		s.MenuItems, err = api.MenuItems(gctx)
		return settle(MenuItems, err)
	})
	g.Go(func() (err error) {
		s.DiningRooms, err = api.DiningRooms(gctx)
		return settle(DiningRooms, err)
	})
	g.Go(func() (err error) {
		s.Tables, err = api.Tables(gctx)
		return settle(Tables, err)
	})
	g.Go(func() (err error) {
		s.Members, err = api.Members(gctx)
		return settle(Members, err)
	})
	g.Go(func() (err error) {
		s.Schema, err = api.Schema(gctx)
		return settle(Schema, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.Failures) == 0 {
		s.Failures = nil
	}
	s.FetchedAt = time.Now().UTC()
	return s, nil
}
