package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

var (
	ErrInvalidRateLimit  = errors.New("middleware: invalid rate limit settings")
	ErrInvalidProxyEntry = errors.New("middleware: invalid trusted proxy")
)

const forwardedForHeader = "X-Forwarded-For"

// RateLimitSettings carries the rate_limit section of the configuration.
// The configuration layer validates it; constructors reject non-positive values.
type RateLimitSettings struct {
	Requests  int
	Window    time.Duration
	Burst     int
	KeyPrefix string
}

func (s RateLimitSettings) validate(needBurst bool) error {
	if s.Requests <= 0 || s.Window < time.Millisecond {
		return fmt.Errorf("%w: requests=%d, window=%s", ErrInvalidRateLimit, s.Requests, s.Window)
	}
	if needBurst && s.Burst <= 0 {
		return fmt.Errorf("%w: burst=%d", ErrInvalidRateLimit, s.Burst)
	}
	return nil
}

// Limiter decides whether one more request for key is allowed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over the limit with 429. Limiter errors let the request through.
// Clients are keyed by remote address unless the peer is a trusted proxy.
func RateLimit(limiter Limiter, proxies *TrustedProxies, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := proxies.ClientKey(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("RateLimit: limiter error, letting request through: client=%s, error=%v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.Warn("RateLimit: limit exceeded: client=%s, path=%s", key, r.URL.Path)
				handlers.RespondTooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TrustedProxies is the set of peers allowed to report the client address in X-Forwarded-For.
// A nil set trusts nobody.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// NewTrustedProxies accepts addresses ("10.0.0.1") and networks ("10.0.0.0/8")
func NewTrustedProxies(entries []string) (*TrustedProxies, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxyEntry, entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxyEntry, entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return &TrustedProxies{prefixes: prefixes}, nil
}

func (t *TrustedProxies) trusts(host string) bool {
	if t == nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientKey returns the address the limit applies to.
// X-Forwarded-For is read right to left only while the hops are trusted proxies.
func (t *TrustedProxies) ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !t.trusts(host) {
		return host
	}

	hops := strings.Split(r.Header.Get(forwardedForHeader), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !t.trusts(hop) {
			return hop
		}
		host = hop
	}
	return host
}

// RedisLimiter counts requests per client in fixed windows shared by every instance.
// Each window has its own key, so a counter never outlives its window.
type RedisLimiter struct {
	rdb      redis.Cmdable
	settings RateLimitSettings
	now      func() time.Time
}

func NewRedisLimiter(rdb redis.Cmdable, settings RateLimitSettings) (*RedisLimiter, error) {
	if err := settings.validate(false); err != nil {
		return nil, err
	}
	return &RedisLimiter{rdb: rdb, settings: settings, now: time.Now}, nil
}

func (l *RedisLimiter) windowKey(client string, now time.Time) string {
	window := now.UnixMilli() / l.settings.Window.Milliseconds()
	return l.settings.KeyPrefix + ":" + client + ":" + strconv.FormatInt(window, 10)
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key, l.now())

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.PExpire(ctx, windowKey, l.settings.Window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return incr.Val() <= int64(l.settings.Requests), nil
}

// LocalLimiter is an in-process token bucket per client, used when Redis is not configured
type LocalLimiter struct {
	mu      sync.Mutex
	clients map[string]*localClient
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

type localClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter allows Requests per Window on average with Burst on top
func NewLocalLimiter(settings RateLimitSettings) (*LocalLimiter, error) {
	if err := settings.validate(true); err != nil {
		return nil, err
	}
	return &LocalLimiter{
		clients: make(map[string]*localClient),
		limit:   rate.Every(settings.Window / time.Duration(settings.Requests)),
		burst:   settings.Burst,
		now:     time.Now,
	}, nil
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[key]
	if !ok {
		c = &localClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1), nil
}

// Cleanup drops clients idle for longer than idle, every interval, until ctx is done
func (l *LocalLimiter) Cleanup(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.prune(idle)
		}
	}
}

func (l *LocalLimiter) prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}
