package middleware

import (
    "context"
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/club-dining/internal/config"
)

// takeToken refills the bucket at KEYS[1] for the whole intervals elapsed
// since its last refill, then spends one token if any is left. It returns
// {allowed, remaining, retry_after_ms}.
var takeToken = redis.NewScript(`
local now, burst, rate, per, ttl = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])
local tokens = tonumber(redis.call('HGET', KEYS[1], 'tokens'))
local last = tonumber(redis.call('HGET', KEYS[1], 'last'))
if tokens == nil or last == nil then
    tokens, last = burst, now
end
local steps = math.floor(math.max(0, now - last) / per)
if steps > 0 then
    tokens = math.min(burst, tokens + steps * rate)
    last = last + steps * per
end
local allowed, retry = 0, 0
if tokens > 0 then
    allowed, tokens = 1, tokens - 1
else
    retry = math.max(0, per - (now - last))
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('EXPIRE', KEYS[1], ttl)
return {allowed, tokens, retry}
`)

var now = time.Now

type verdict struct {
    allowed   bool
    remaining int64
    retry     time.Duration
}

func take(ctx context.Context, rdb *redis.Client, key string, b config.Bucket) (verdict, error) {
    ttl := b.Full() + b.Per
    vals, err := takeToken.Run(ctx, rdb, []string{key},
        now().UnixMilli(), b.Burst, b.Rate, b.Per.Milliseconds(), int64(ttl.Seconds())+1,
    ).Int64Slice()
    if err != nil {
        return verdict{}, err
    }
    if len(vals) != 3 {
        return verdict{}, fmt.Errorf("ratelimit: unexpected script result %v", vals)
    }
    return verdict{
        allowed:   vals[0] == 1,
        remaining: vals[1],
        retry:     time.Duration(vals[2]) * time.Millisecond,
    }, nil
}

// NewRateLimiter draws one token per request from the caller's read or write
// bucket. Redis errors let the request through.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            class, bucket := bucketFor(cfg, c.Request().Method)
            key := rateKey(cfg, class, c)

            v, err := take(c.Request().Context(), rdb, key, bucket)
            if err != nil {
                if cfg.Debug {
                    c.Logger().Warnf("ratelimit: %s: %v", key, err)
                }
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(bucket.Burst))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(v.remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if v.allowed {
                return next(c)
            }

            secs := int((v.retry + time.Second - 1) / time.Second)
            h.Set("Retry-After", strconv.Itoa(secs))
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "Too many requests, please slow down",
                "retry_after": secs,
            })
        }
    }
}

func bucketFor(cfg config.RateLimitConfig, method string) (string, config.Bucket) {
    if method == http.MethodGet || method == http.MethodHead {
        return "read", cfg.Reads
    }
    return "write", cfg.Writes
}

// rateKey is prefix:class:caller, where caller follows cfg.Scope.
func rateKey(cfg config.RateLimitConfig, class string, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    var caller string
    switch strings.ToLower(cfg.Scope) {
    case "ip":
        caller = "ip:" + ip
    case "ip_user":
        caller = "ip:" + ip + ":user:" + userID(c)
    default:
        caller = "user:" + userID(c)
    }
    return cfg.Prefix + ":" + class + ":" + caller
}
