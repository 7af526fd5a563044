package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Invalidator drops cached data snapshots for every user.
type Invalidator interface {
    InvalidateAll(ctx context.Context) error
}

// Consumer reads the events queue. Every event invalidates cached snapshots;
// fired orders are also appended to logs/kitchen.log as one-line chits.
type Consumer struct {
    url    string
    logDir string
    cache  Invalidator
}

// NewConsumer builds a consumer. cache may be nil.
func NewConsumer(url, logDir string, cache Invalidator) *Consumer {
    if logDir == "" {
        logDir = "logs"
    }
    return &Consumer{url: url, logDir: logDir, cache: cache}
}

// Run connects to RabbitMQ and consumes until ctx is cancelled, reconnecting
// with backoff whenever the broker is unreachable or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(c.url)
        if err != nil {
            log.Printf("events-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("events-consumer: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("events-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(ctx, d.Body); err != nil {
                log.Printf("events-consumer: handle message failed: %v", err)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle processes one message body. Malformed or unknown events are errors.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
    var ev Event
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if !Known(ev.Type) {
        return fmt.Errorf("unknown event type %q", ev.Type)
    }
    if c.cache != nil {
        if err := c.cache.InvalidateAll(ctx); err != nil {
            log.Printf("events-consumer: invalidate failed: %v", err)
        }
    }
    if ev.Type == OrderFired {
        return c.appendChit(ev)
    }
    return nil
}

func (c *Consumer) appendChit(ev Event) error {
    if err := os.MkdirAll(c.logDir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(c.logDir, "kitchen.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(ChitLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// ChitLine renders a fired order as a single kitchen log line.
func ChitLine(ev Event) string {
    items := "[]"
    if len(ev.Items) > 0 {
        items = fmt.Sprintf("[%s]", strings.Join(ev.Items, ", "))
    }
    return fmt.Sprintf("[%s] Order fired | order_id=%d | reservation_id=%d | date=%s | time=%s | attendee=%q | items=%s\n",
        ev.OccurredAt, ev.OrderID, ev.ReservationID, ev.Date, ev.StartTime, ev.Attendee, items)
}
