package data

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// User represents a registered account stored in the "users" table.
// PasswordHash holds the bcrypt hash of the password, never the plaintext.
type User struct {
	ID           string    `db:"user_id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserModel wraps a database connection pool and provides methods for
// creating and looking up user records.
type UserModel struct {
	DB *sqlx.DB
}

// Insert adds a new user row, generating its identifier and writing it back
// into user. The caller supplies the bcrypt hash. A unique-constraint
// violation on username is mapped to ErrDuplicateUsername under both
// supported drivers, so a registration racing past the handler's existence
// check still surfaces as a duplicate rather than a generic failure.
func (m UserModel) Insert(user *User) error {
	user.ID = NewID()

	query := m.DB.Rebind(`
		INSERT INTO users (user_id, username, password_hash)
		VALUES (?, ?, ?)`)

	_, err := m.DB.Exec(query, user.ID, user.Username, user.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateUsername
		}
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// GetByUsername fetches a user by username alone. Both the registration
// duplicate check and the login lookup key on the username only; comparing
// the stored hash is the caller's job.
// Returns ErrRecordNotFound if no user with that username exists.
func (m UserModel) GetByUsername(username string) (*User, error) {
	query := m.DB.Rebind(`
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE username = ?`)

	var user User
	err := m.DB.Get(&user, query, username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// Exists reports whether a user with the given id is present.
func (m UserModel) Exists(id string) (bool, error) {
	query := m.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = ?)`)

	var exists bool
	err := m.DB.Get(&exists, query, id)
	return exists, err
}
