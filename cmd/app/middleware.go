package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/sushihentaime/bloglist/internal/userservice"
)

// userResolver turns an access token into the user acting on a request.
type userResolver interface {
	VerifyToken(token string) (*userservice.Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*userservice.User, error)
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

const maxLoggedBody = 64 << 10

// logRequest writes one line per request. POST bodies are included with any
// password replaced.
func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var body string
		if r.Method == http.MethodPost && r.Body != nil {
			buf, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
			if err == nil {
				body = redactBody(buf)
			}
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(buf), r.Body), r.Body}
		}

		lw := &loggingResponseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		if lw.status == 0 {
			lw.status = http.StatusOK
		}

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("uri", r.URL.RequestURI()),
			slog.Int("status", lw.status),
			slog.Int("size", lw.size),
			slog.Duration("duration", time.Since(start)),
		}
		if body != "" {
			attrs = append(attrs, slog.String("body", body))
		}

		app.logger.Info("request", attrs...)
	})
}

func redactBody(buf []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(buf, &fields); err != nil {
		return ""
	}

	if _, ok := fields["password"]; ok {
		fields["password"] = "[redacted]"
	}

	js, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(js)
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")

		if origin != "" && (slices.Contains(app.config.TrustedOrigins, origin) || slices.Contains(app.config.TrustedOrigins, "*")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, PUT, PATCH, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				w.WriteHeader(http.StatusOK)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

const (
	limiterSweepInterval = time.Minute
	limiterIdleTimeout   = 3 * time.Minute
)

// clientLimiters keeps one token bucket per client IP. Clients idle for longer
// than limiterIdleTimeout are dropped by a sweep that runs at most once per
// limiterSweepInterval, on the request path.
type clientLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	clients   map[string]*limitedClient
	lastSweep time.Time
}

type limitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	return &clientLimiters{
		rps:       rate.Limit(rps),
		burst:     burst,
		clients:   make(map[string]*limitedClient),
		lastSweep: time.Now(),
	}
}

func (l *clientLimiters) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		for addr, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTimeout {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &limitedClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func (l *clientLimiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (app *application) rateLimit(next http.Handler) http.Handler {
	limiters := newClientLimiters(app.config.RateLimitRPS, app.config.RateLimitBurst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.config.RateLimitEnabled {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiters.allow(ip, time.Now()) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractToken stores a bearer token from the Authorization header on the
// request context. Any other header leaves the token unset.
func (app *application) extractToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authHeader := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(authHeader, " ")
		if ok && strings.EqualFold(scheme, "bearer") && token != "" {
			r = app.createTokenContext(r, token)
		}

		next.ServeHTTP(w, r)
	})
}

// extractUser resolves the token on the context to the acting user. A token
// whose user no longer exists leaves the request without one.
func (app *application) extractUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := app.getTokenContext(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := app.users.VerifyToken(token)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, userservice.ErrInvalidToken)
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, userservice.ErrInvalidToken)
			return
		}

		user, err := app.users.GetUserByID(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, userservice.ErrNotFound):
				next.ServeHTTP(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		r = app.createUserContext(r, user)
		next.ServeHTTP(w, r)
	})
}

func (app *application) userExtractor(next http.HandlerFunc) http.Handler {
	return app.extractToken(app.extractUser(next))
}
