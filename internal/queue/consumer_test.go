package queue

import (
    "context"
    "encoding/json"
    "errors"
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type countingCache struct {
    calls int
    err   error
}

func (c *countingCache) InvalidateAll(context.Context) error {
    c.calls++
    return c.err
}

func encode(t *testing.T, ev Event) []byte {
    t.Helper()
    b, err := json.Marshal(ev)
    require.NoError(t, err)
    return b
}

func TestNewEvent(t *testing.T) {
    a, b := NewEvent(OrderFired), NewEvent(OrderFired)
    assert.NotEmpty(t, a.ID)
    assert.NotEqual(t, a.ID, b.ID)
    assert.Equal(t, OrderFired, a.Type)
    assert.NotEmpty(t, a.OccurredAt)
}

func TestHandleInvalidatesOnEveryEvent(t *testing.T) {
    dir := t.TempDir()
    cache := &countingCache{}
    c := NewConsumer("", dir, cache)

    ev := NewEvent(ReservationStatusChanged)
    ev.ReservationID = 5
    ev.Status = "confirmed"
    require.NoError(t, c.Handle(context.Background(), encode(t, ev)))
    assert.Equal(t, 1, cache.calls)

    _, err := os.Stat(filepath.Join(dir, "kitchen.log"))
    assert.True(t, os.IsNotExist(err), "only fired orders reach the kitchen log")
}

func TestHandleAppendsFiredOrder(t *testing.T) {
    dir := t.TempDir()
    c := NewConsumer("", dir, nil)

    ev := NewEvent(OrderFired)
    ev.OrderID = 11
    ev.ReservationID = 5
    ev.Date = "2026-10-15"
    ev.StartTime = "12:00"
    ev.Attendee = "Robin Ames"
    ev.Items = []string{"Tomato Soup", "Club Sandwich"}
    require.NoError(t, c.Handle(context.Background(), encode(t, ev)))
    require.NoError(t, c.Handle(context.Background(), encode(t, ev)))

    raw, err := os.ReadFile(filepath.Join(dir, "kitchen.log"))
    require.NoError(t, err)
    line := ChitLine(ev)
    assert.Equal(t, line+line, string(raw))
    assert.Contains(t, line, "order_id=11")
    assert.Contains(t, line, "items=[Tomato Soup, Club Sandwich]")
}

func TestHandleRejectsBadMessages(t *testing.T) {
    cache := &countingCache{}
    c := NewConsumer("", t.TempDir(), cache)

    assert.Error(t, c.Handle(context.Background(), []byte("{not json")))
    assert.Error(t, c.Handle(context.Background(), encode(t, Event{Type: "seat.held"})))
    assert.Zero(t, cache.calls)
}

func TestHandleToleratesInvalidateFailure(t *testing.T) {
    cache := &countingCache{err: errors.New("redis down")}
    c := NewConsumer("", t.TempDir(), cache)
    assert.NoError(t, c.Handle(context.Background(), encode(t, NewEvent(OrderFulfilled))))
    assert.Equal(t, 1, cache.calls)
}

func TestChitLineWithoutItems(t *testing.T) {
    ev := Event{OccurredAt: "2026-10-16T12:00:00Z", OrderID: 1}
    assert.Contains(t, ChitLine(ev), "items=[]")
}
