package utils // package utils provides helpers for bearer tokens issued by the club API

import (
    "crypto/sha256" // SHA‑256 hashing for cache keys
    "encoding/hex"  // hex encoding of digests
    "errors"        // sentinel errors
    "fmt"           // error wrapping
    "strconv"       // numeric subject claims
    "time"          // expiry checks

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing access tokens
)

// ErrTokenExpired is returned when the token's exp claim is in the past.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid is returned for tokens that cannot be parsed or verified.
var ErrTokenInvalid = errors.New("token invalid")

// TokenInfo is what the console needs to know about an access token before
// asking the API who it belongs to.
type TokenInfo struct {
    Subject   string    // sub claim, stringified
    Role      string    // role claim, empty when the API omits it
    ExpiresAt time.Time // zero when the token carries no exp
}

// InspectToken parses an access token. When secret is non-empty the HS256
// signature is verified; otherwise the claims are read without verification
// and only the expiry is enforced (the API remains the authority and will
// answer 401 for forged tokens).
func InspectToken(raw, secret string) (TokenInfo, error) {
    claims := jwt.MapClaims{}
    var err error
    if secret != "" {
        _, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
            // Reject anything that is not HMAC signed.
            if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                return nil, ErrTokenInvalid
            }
            return []byte(secret), nil
        })
    } else {
        _, _, err = jwt.NewParser().ParseUnverified(raw, claims)
    }
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return TokenInfo{}, ErrTokenExpired
        }
        return TokenInfo{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
    }

    info := TokenInfo{Subject: claimString(claims["sub"])}
    if r, ok := claims["role"].(string); ok {
        info.Role = r
    }
    if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
        info.ExpiresAt = exp.Time
        // ParseUnverified skips validation, so check expiry ourselves.
        if time.Now().After(exp.Time) {
            return TokenInfo{}, ErrTokenExpired
        }
    }
    return info, nil
}

// claimString renders a sub claim that may be a string or a JSON number.
func claimString(v interface{}) string {
    switch t := v.(type) {
    case string:
        return t
    case float64:
        return strconv.FormatInt(int64(t), 10)
    }
    return ""
}

// NewAccessToken signs an HS256 token with sub, role, exp and iat claims.
// The console never issues tokens for real sessions; this exists for local
// development against a stub API and for tests.
func NewAccessToken(secret, subject, role string, ttl time.Duration) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "sub":  subject,
        "role": role,
        "exp":  now.Add(ttl).Unix(),
        "iat":  now.Unix(),
    }
    return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// HashToken returns the SHA‑256 hex digest of a raw token. Caches key on the
// digest so bearer tokens never appear in Redis.
func HashToken(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
