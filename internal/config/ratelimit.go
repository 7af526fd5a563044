package config

import "time"

// Bucket is one token bucket: Burst requests at once, refilled by Rate
// tokens every Per.
type Bucket struct {
    Burst int
    Rate  int
    Per   time.Duration
}

// Full is how long an empty bucket takes to refill.
func (b Bucket) Full() time.Duration {
    steps := (b.Burst + b.Rate - 1) / b.Rate
    return time.Duration(steps) * b.Per
}

// RateLimitConfig drives the Redis token buckets in front of /v1. Reads
// (GET, HEAD) and writes draw from separate buckets per caller. Scope picks
// what identifies a caller: "user" (default), "ip" or "ip_user".
type RateLimitConfig struct {
    Enabled bool
    Reads   Bucket
    Writes  Bucket
    Scope   string
    Prefix  string
    Debug   bool
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables. Bucket settings come
// from RATE_LIMIT_{READ,WRITE}_{BURST,RATE,PER}.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Reads:   loadBucket("READ", Bucket{Burst: 60, Rate: 1, Per: time.Second}),
        Writes:  loadBucket("WRITE", Bucket{Burst: 10, Rate: 1, Per: 3 * time.Second}),
        Scope:   envStr("RATE_LIMIT_SCOPE", "user"),
        Prefix:  envStr("RATE_LIMIT_PREFIX", "dining:rl"),
        Debug:   envBool("RATE_LIMIT_DEBUG", false),
    }
}

func loadBucket(class string, def Bucket) Bucket {
    b := Bucket{
        Burst: envInt("RATE_LIMIT_"+class+"_BURST", def.Burst),
        Rate:  envInt("RATE_LIMIT_"+class+"_RATE", def.Rate),
        Per:   envDur("RATE_LIMIT_"+class+"_PER", def.Per),
    }
    if b.Burst < 1 {
        b.Burst = 1
    }
    if b.Rate < 1 {
        b.Rate = 1
    }
    if b.Per <= 0 {
        b.Per = time.Second
    }
    return b
}
