package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/calier/bookhaven/internal/data"
)

// newTestApplication builds an application backed by an in-memory SQLite
// database, with rate limiting off and the cheapest bcrypt cost so the auth
// tests stay fast.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=1&_case_sensitive_like=1")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, data.EnsureSchema(db))

	var settings serverConfig
	settings.environment = "test"
	settings.bcryptCost = bcrypt.MinCost
	settings.limiter.enabled = false

	return &applicationDependencies{
		config: settings,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.NewModels(db),
	}
}

// newTestServer starts an httptest server over the full middleware and
// routing stack.
func newTestServer(t *testing.T, app *applicationDependencies) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(app.routes())
	t.Cleanup(ts.Close)
	return ts
}

// doRequest sends a request with an optional JSON body and decodes the JSON
// response into a generic map.
func doRequest(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

// testCatalog holds the ids of the fixtures seeded by seedTestCatalog.
type testCatalog struct {
	JaneDoe   string
	Rowling   string
	Potter1   string
	Potter2   string
	FieldBook string
}

// seedTestCatalog loads a small catalog straight through the model layer.
func seedTestCatalog(t *testing.T, models data.Models) testCatalog {
	t.Helper()

	var catalog testCatalog

	jane := &data.Author{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, models.Authors.Insert(jane))
	catalog.JaneDoe = jane.ID

	rowling := &data.Author{FirstName: "Joanne", LastName: "Rowling"}
	require.NoError(t, models.Authors.Insert(rowling))
	catalog.Rowling = rowling.ID

	books := []struct {
		id       *string
		title    string
		year     int
		authorID string
	}{
		{&catalog.FieldBook, "A Field Guide to Shelving", 2004, catalog.JaneDoe},
		{&catalog.Potter1, "Harry Potter and the Philosopher's Stone", 1997, catalog.Rowling},
		{&catalog.Potter2, "Harry Potter and the Chamber of Secrets", 1998, catalog.Rowling},
	}
	for _, b := range books {
		book := &data.Book{
			Title:         b.title,
			DatePublished: time.Date(b.year, time.June, 1, 0, 0, 0, 0, time.UTC),
			AuthorID:      b.authorID,
		}
		require.NoError(t, models.Books.Insert(book))
		*b.id = book.ID
	}

	return catalog
}

// registerUser registers a user through the API and returns the new id.
func registerUser(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()

	status, payload := doRequest(t, ts, http.MethodPost, "/register",
		`{"username": "`+username+`", "password": "`+password+`"}`)
	require.Equal(t, http.StatusOK, status)

	userID, ok := payload["userId"].(string)
	require.True(t, ok, "register response missing userId")
	return userID
}
