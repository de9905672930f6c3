package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Page is a rendered response as replayed on a cache hit.
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache stores whole responses keyed by request path, query string and
// session. Entries are never invalidated, they expire after TTL.
type PageCache struct {
	log     *slog.Logger
	store   Store
	prefix  string
	timeout time.Duration
}

// NewPageCache creates a page cache on top of store. A zero timeout uses
// the store's default timeout.
func NewPageCache(log *slog.Logger, store Store, prefix string, timeout time.Duration) *PageCache {
	return &PageCache{
		log:     log,
		store:   store,
		prefix:  prefix,
		timeout: timeout,
	}
}

func (c *PageCache) TTL() time.Duration {
	if c.timeout > 0 {
		return c.timeout
	}
	return c.store.DefaultTimeout()
}

// Key identifies the response to r as seen by the holder of the session
// cookie named cookieName.
func (c *PageCache) Key(r *http.Request, cookieName string) string {
	var session string
	if cookie, err := r.Cookie(cookieName); err == nil {
		session = cookie.Value
	}
	h := sha256.New()
	h.Write([]byte(r.URL.Path))
	h.Write([]byte{0})
	h.Write([]byte(r.URL.RawQuery))
	h.Write([]byte{0})
	h.Write([]byte(session))
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

// Get reports a miss for absent entries as well as for store failures,
// which are logged.
func (c *PageCache) Get(ctx context.Context, key string) (*Page, bool) {
	const op = "cache.PageCache.Get"
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.Warn("cache unavailable", "op", op, "key", key, "errMsg", err.Error())
		}
		return nil, false
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		c.log.Warn("corrupted cache entry", "op", op, "key", key, "errMsg", err.Error())
		c.Invalidate(ctx, key)
		return nil, false
	}
	return &page, true
}

func (c *PageCache) Put(ctx context.Context, key string, page *Page) error {
	const op = "cache.PageCache.Put"
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, key, data, c.TTL()); err != nil {
		c.log.Warn("failed to store page", "op", op, "key", key, "errMsg", err.Error())
		return err
	}
	return nil
}

// Invalidate drops a stored page before its TTL runs out.
func (c *PageCache) Invalidate(ctx context.Context, key string) error {
	const op = "cache.PageCache.Invalidate"
	if err := c.store.Delete(ctx, key); err != nil {
		c.log.Warn("failed to drop page", "op", op, "key", key, "errMsg", err.Error())
		return err
	}
	return nil
}
