package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
)

func fakeAPI(t *testing.T, meCalls *int) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer"}`)
		case "/api/auth/me":
			*meCalls++
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"id":1,"email":"m@club.org","role":"member"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL, time.Second)
}

func TestLoginWithoutCache(t *testing.T) {
	calls := 0
	m := NewManager(fakeAPI(t, &calls), nil, time.Minute)

	s, err := m.Login(context.Background(), "  M@Club.org ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, int64(1), s.User.ID)

	_, err = m.Login(context.Background(), "m@club.org", "bad")
	assert.Equal(t, "Incorrect email or password", apiclient.Message(err))

	_, err = m.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestRestoreUsesCache(t *testing.T) {
	calls := 0
	rdb, mock := redismock.NewClientMock()
	m := NewManager(fakeAPI(t, &calls), rdb, time.Minute)

	u := model.User{ID: 1, Email: "m@club.org", Role: "member"}
	buf, _ := json.Marshal(u)
	mock.ExpectGet(key("tok")).SetVal(string(buf))

	got, err := m.Restore(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &u, got)
	assert.Zero(t, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreMissFetchesAndStores(t *testing.T) {
	calls := 0
	rdb, mock := redismock.NewClientMock()
	m := NewManager(fakeAPI(t, &calls), rdb, time.Minute)

	buf, _ := json.Marshal(model.User{ID: 1, Email: "m@club.org", Role: "member"})
	mock.ExpectGet(key("tok")).RedisNil()
	mock.ExpectSet(key("tok"), string(buf), time.Minute).SetVal("OK")

	got, err := m.Restore(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreExpiredEvicts(t *testing.T) {
	calls := 0
	rdb, mock := redismock.NewClientMock()
	m := NewManager(fakeAPI(t, &calls), rdb, time.Minute)

	mock.ExpectGet(key("stale")).RedisNil()
	mock.ExpectDel(key("stale")).SetVal(0)

	_, err := m.Restore(context.Background(), "stale")
	assert.ErrorIs(t, err, apiclient.ErrSessionExpired)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = m.Restore(context.Background(), "")
	assert.ErrorIs(t, err, apiclient.ErrSessionExpired)
}
