package data

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// testModels opens an in-memory SQLite database, bootstraps the schema, and
// returns a Models wired to it. case_sensitive_like makes LIKE behave the
// way PostgreSQL does, so the substring-search semantics match production.
func testModels(t *testing.T) Models {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=1&_case_sensitive_like=1")
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(db))

	return NewModels(db)
}

// catalogFixture holds the ids of the seeded authors and books so tests can
// reference them directly.
type catalogFixture struct {
	JaneDoe    string
	JohnSmith  string
	Rowling    string
	FieldGuide string
	Cataloging string
	QuietStack string
	Potter1    string
	Potter2    string
}

// seedCatalog inserts three authors and five books and returns their ids.
func seedCatalog(t *testing.T, models Models) catalogFixture {
	t.Helper()

	var fixture catalogFixture

	authors := []struct {
		id          *string
		first, last string
	}{
		{&fixture.JaneDoe, "Jane", "Doe"},
		{&fixture.JohnSmith, "John", "Smith"},
		{&fixture.Rowling, "Joanne", "Rowling"},
	}
	for _, a := range authors {
		author := &Author{FirstName: a.first, LastName: a.last}
		require.NoError(t, models.Authors.Insert(author))
		*a.id = author.ID
	}

	books := []struct {
		id       *string
		title    string
		year     int
		authorID string
	}{
		{&fixture.FieldGuide, "A Field Guide to Shelving", 2004, fixture.JaneDoe},
		{&fixture.Cataloging, "Cataloging for Beginners", 2011, fixture.JaneDoe},
		{&fixture.QuietStack, "The Quiet Stacks", 2016, fixture.JohnSmith},
		{&fixture.Potter1, "Harry Potter and the Philosopher's Stone", 1997, fixture.Rowling},
		{&fixture.Potter2, "Harry Potter and the Chamber of Secrets", 1998, fixture.Rowling},
	}
	for _, b := range books {
		book := &Book{
			Title:         b.title,
			DatePublished: time.Date(b.year, time.June, 1, 0, 0, 0, 0, time.UTC),
			AuthorID:      b.authorID,
		}
		require.NoError(t, models.Books.Insert(book))
		*b.id = book.ID
	}

	return fixture
}

// seedUser inserts a user with the given username and a placeholder hash,
// returning its id.
func seedUser(t *testing.T, models Models, username string) string {
	t.Helper()

	user := &User{Username: username, PasswordHash: "not-a-real-hash"}
	require.NoError(t, models.Users.Insert(user))
	return user.ID
}
