package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused client limiter is kept.
const limiterIdleTTL = 10 * time.Minute

type ctxPlayerKey struct{}

// PlayerFromContext returns the authenticated player id, if any.
func PlayerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one logrus entry per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		entry := logrus.WithFields(logrus.Fields{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"bytes":     ww.BytesWritten(),
			"duration":  time.Since(start).String(),
			"requestID": chimw.GetReqID(r.Context()),
		})
		if ww.Status() >= http.StatusInternalServerError {
			entry.Warn("http request failed")
			return
		}
		entry.Debug("http request")
	})
}

// requirePlayerToken accepts an HS256 bearer token whose subject is the
// player id in the route.
func requirePlayerToken(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
				return
			}

			if claims.Subject == "" || claims.Subject != chi.URLParam(r, PlayerIDParam) {
				writeError(w, http.StatusForbidden, "forbidden", "token does not belong to this player")
				return
			}

			ctx := context.WithValue(r.Context(), ctxPlayerKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// clientLimiter keeps a token bucket per client address.
type clientLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*limiterEntry
	lastScan time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	if burst <= 0 {
		burst = int(rps)
		if burst < 1 {
			burst = 1
		}
	}
	return &clientLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*limiterEntry),
	}
}

func (l *clientLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastScan) > limiterIdleTTL {
		for k, e := range l.limiters {
			if now.Sub(e.lastAccess) > limiterIdleTTL {
				delete(l.limiters, k)
			}
		}
		l.lastScan = now
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastAccess = now
	return e.limiter
}

func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		if !l.get(key).Allow() {
			logrus.Debugf("rate limit exceeded for %s", key)
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, please slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
