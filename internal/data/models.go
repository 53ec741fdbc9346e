// Package data provides the data models and database interaction logic
// for the library catalog service.
package data

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned when inserting a user whose username is
// already taken.
var ErrDuplicateUsername = errors.New("duplicate username")

// ErrBookUnavailable is returned when a borrow targets a book that does not
// exist or already has a holder.
var ErrBookUnavailable = errors.New("book unavailable")

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sqlx directly.
type Models struct {
	Users   UserModel   // Accounts and credential lookups
	Authors AuthorModel // Author rows, written by the seed loader
	Books   BookModel   // Catalog queries and the borrow operation
	Likes   LikeModel   // The user<->book liked relation
	Records RecordModel // Append-only borrow history
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sqlx.DB) Models {
	return Models{
		Users:   UserModel{DB: db},
		Authors: AuthorModel{DB: db},
		Books:   BookModel{DB: db},
		Likes:   LikeModel{DB: db},
		Records: RecordModel{DB: db},
	}
}

// EnsureSchema creates every table the catalog needs if it is not already
// present. The DDL is written to run unchanged on both PostgreSQL and SQLite.
func EnsureSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id       CHAR(25) PRIMARY KEY,
			username      VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			author_id  CHAR(25) PRIMARY KEY,
			first_name VARCHAR(255) NOT NULL,
			last_name  VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			book_id        CHAR(25) PRIMARY KEY,
			title          VARCHAR(255) NOT NULL,
			date_published TIMESTAMP NOT NULL,
			author_id      CHAR(25) NOT NULL REFERENCES authors(author_id),
			holder_id      CHAR(25) REFERENCES users(user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS book_likes (
			user_id CHAR(25) NOT NULL REFERENCES users(user_id),
			book_id CHAR(25) NOT NULL REFERENCES books(book_id),
			PRIMARY KEY (user_id, book_id)
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			record_id     CHAR(25) PRIMARY KEY,
			book_id       CHAR(25) NOT NULL REFERENCES books(book_id),
			user_id       CHAR(25) NOT NULL REFERENCES users(user_id),
			borrowed_date TIMESTAMP NOT NULL
		)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
