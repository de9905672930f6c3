package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mymdb/proj/internal/cache"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/services/auth"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil && rec != http.ErrAbortHandler {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.cfg.Limiter.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		mu.Lock()
		c, ok := clients[ip]
		if !ok {
			c = &client{limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()
		if !allowed {
			log.Warn("rate limit exceeded", "ip", ip)
			app.Http.Response(
				w, r,
				envelop{"error": "rate limit exceeded"},
				"Can't process request see an error below.",
				http.StatusTooManyRequests,
			)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyUser CtxKey = "user"

func contextSetUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), CtxKeyUser, user))
}

func contextGetUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

// Authenticate resolves the session cookie to a user. Requests without a
// valid session carry the anonymous user.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "middlewares.Authenticate"
		user := models.AnonymousUser
		if cookie, err := r.Cookie(app.cfg.Session.CookieName); err == nil && cookie.Value != "" {
			user, err = app.Services.Auth.UserFromSession(r.Context(), cookie.Value)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrInvalidSession), errors.Is(err, auth.ErrUserNotFound):
					app.log.Debug("anonymous request with stale session", "op", op)
					user = models.AnonymousUser
				default:
					app.Http.ServerError(w, r, err, "")
					return
				}
			}
		}
		next.ServeHTTP(w, contextSetUser(r, user))
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextGetUser(r).IsAnonymous() {
			app.Http.Unauthorized(w, r, "You must be authenticated to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireActivatedUser(next http.Handler) http.Handler {
	return app.requireAuthenticatedUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !contextGetUser(r).IsActive {
			app.Http.Forbidden(w, r, "Your account must be activated to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return app.requireActivatedUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !contextGetUser(r).IsAdmin() {
			app.Http.Forbidden(w, r, "Only administrators can access this resource")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// cachePage serves successful GET responses from the page cache. Stored
// pages expire after the cache TTL and are never invalidated early.
func (app *Application) cachePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "middlewares.cachePage"
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		key := app.pages.Key(r, app.cfg.Session.CookieName)
		ttl := app.pages.TTL()
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(ttl.Seconds())))
		if page, ok := app.pages.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", page.ContentType)
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(page.Status)
			w.Write(page.Body)
			return
		}
		w.Header().Set("X-Cache", "MISS")

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var body bytes.Buffer
		ww.Tee(&body)
		next.ServeHTTP(ww, r)
		if r.Method != http.MethodGet || ww.Status() != http.StatusOK {
			return
		}
		page := &cache.Page{
			Status:      http.StatusOK,
			ContentType: ww.Header().Get("Content-Type"),
			Body:        body.Bytes(),
		}
		queued := app.tasks.TryAdd(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			app.pages.Put(ctx, key, page)
		})
		if !queued {
			app.log.Warn("page not cached, task queue full", "op", op, "path", r.URL.Path)
		}
	})
}
