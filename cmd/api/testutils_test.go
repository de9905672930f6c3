package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mymdb/proj/internal/cache"
	"mymdb/proj/internal/config"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/services"
	"mymdb/proj/internal/services/auth"
	"mymdb/proj/internal/storage/sqlite"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	aliceID int64 = iota + 1
	bobID
	adminID
	inactiveID
)

var testUsers = map[int64]*models.User{
	aliceID:    {ID: aliceID, Username: "alice", IsActive: true},
	bobID:      {ID: bobID, Username: "bob", IsActive: true},
	adminID:    {ID: adminID, Username: "root", Role: models.RoleAdmin, IsActive: true},
	inactiveID: {ID: inactiveID, Username: "carol"},
}

type fakeSso struct{}

func (fakeSso) GetUser(_ context.Context, params auth.GetUserParams) (*models.User, error) {
	user, ok := testUsers[params.ID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *memoryBlobs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *memoryBlobs) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memoryBlobs) URL(key string) string {
	return "http://images.test/" + key
}

// syncExecutor runs tasks inline so cache writes are visible to the next
// request.
type syncExecutor struct{}

func (syncExecutor) TryAdd(task func()) bool {
	task()
	return true
}

func testConfig() *config.Config {
	return &config.Config{
		AppSecret: "test-secret",
		Cache:     config.Cache{DefaultTimeout: time.Minute, KeyPrefix: "test:"},
		Listing:   config.Listing{PageSize: 10},
		Session:   config.Session{CookieName: "sessionid"},
		Images:    config.Images{MaxUploadSize: 1 << 20},
		Server:    config.Server{ShutdownTimeout: time.Second},
	}
}

func NewTestApplication(cfg *config.Config, t *testing.T) *Application {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.New(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	m := sqlite.NewModels(db)
	storage := services.Storage{Movies: m.Movie, Persons: m.Person, Votes: m.Vote, Images: m.Image}
	blobs := &memoryBlobs{objects: map[string][]byte{}}
	svcs := services.New(log, cfg, storage, fakeSso{}, blobs)
	pages := cache.NewPageCache(log, cache.NewMemoryStore(cfg.Cache.DefaultTimeout, time.Minute), cfg.Cache.KeyPrefix, cfg.Listing.CacheTimeout)
	return NewApplication(cfg, log, svcs, pages, syncExecutor{})
}

func sessionFor(t *testing.T, app *Application, userID int64) *http.Cookie {
	t.Helper()
	token, err := app.Services.Auth.NewSessionToken(userID, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: app.cfg.Session.CookieName, Value: token}
}

type testResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func do(t *testing.T, handler http.Handler, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func field[T any](t *testing.T, resp testResponse, key string) T {
	t.Helper()
	var v T
	raw, ok := resp.Data[key]
	require.True(t, ok, "missing %q in response data", key)
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
