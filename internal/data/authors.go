package data

import "github.com/jmoiron/sqlx"

// Author represents a row in the "authors" table. Authors own zero or more
// books and are only ever created by the seed loader.
type Author struct {
	ID        string `db:"author_id" json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
}

// AuthorModel wraps a database connection pool for author records.
type AuthorModel struct {
	DB *sqlx.DB
}

// Insert adds a new author row. An identifier is generated unless the caller
// already assigned one (seed fixtures carry their own ids so books can
// reference them).
func (m AuthorModel) Insert(author *Author) error {
	if author.ID == "" {
		author.ID = NewID()
	}

	query := m.DB.Rebind(`
		INSERT INTO authors (author_id, first_name, last_name)
		VALUES (?, ?, ?)`)

	_, err := m.DB.Exec(query, author.ID, author.FirstName, author.LastName)
	return err
}
