package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	return &Config{
		Port:                 "0",
		Environment:          "test",
		Version:              "test",
		Secret:               "testsecret",
		TokenLifetime:        time.Hour,
		RequireOwnerOnUpdate: true,
		TrustedOrigins:       []string{"*"},
		UserCacheTTL:         time.Minute,
	}
}

func newTestApplication(t *testing.T, cfg *Config) *application {
	db := common.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := userservice.NewTokenMaker(cfg.Secret, cfg.TokenLifetime)
	if err != nil {
		t.Fatal(err)
	}

	cache := common.NewCache(cfg.UserCacheTTL, time.Minute)
	userService := userservice.NewUserService(db, tokens, common.NopProducer{}, cache, logger)

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		users:       userService,
		userService: userService,
		blogService: blogservice.NewBlogService(db, logger),
	}
}

// do sends a request and returns the status, headers and raw body. An empty
// token sends no Authorization header.
func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, []byte) {
	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	var dst T
	err := json.Unmarshal(body, &dst)
	if err != nil {
		t.Fatalf("could not decode %q: %v", body, err)
	}
	return dst
}

func errorMessage(t *testing.T, body []byte) string {
	return decodeJSON[map[string]string](t, body)["error"]
}

func (ts *testServer) createUser(t *testing.T, username, name, password string) userservice.UserResponse {
	status, _, body := ts.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"username": username,
		"name":     name,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("could not create user %s: %d %s", username, status, body)
	}
	return decodeJSON[userservice.UserResponse](t, body)
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	status, _, body := ts.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("could not log in %s: %d %s", username, status, body)
	}
	return decodeJSON[userservice.Login](t, body).Token
}

func (ts *testServer) createBlog(t *testing.T, token string, blog map[string]any) blogservice.BlogResponse {
	status, _, body := ts.do(t, http.MethodPost, "/api/blogs", token, blog)
	if status != http.StatusCreated {
		t.Fatalf("could not create blog: %d %s", status, body)
	}
	return decodeJSON[blogservice.BlogResponse](t, body)
}

func (ts *testServer) blogs(t *testing.T) []blogservice.BlogResponse {
	status, _, body := ts.do(t, http.MethodGet, "/api/blogs", "", nil)
	if status != http.StatusOK {
		t.Fatalf("could not list blogs: %d %s", status, body)
	}
	return decodeJSON[[]blogservice.BlogResponse](t, body)
}

func (ts *testServer) reset(t *testing.T) {
	status, _, body := ts.do(t, http.MethodPost, "/api/testing/reset", "", nil)
	if status != http.StatusNoContent {
		t.Fatalf("could not reset: %d %s", status, body)
	}
}

func testConfigLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
