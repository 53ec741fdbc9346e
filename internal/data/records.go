package data

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// Record represents one borrow event in the append-only "records" table.
// Rows are written only by BookModel.Borrow and are never updated or deleted.
type Record struct {
	ID           string    `db:"record_id" json:"id"`
	BookID       string    `db:"book_id" json:"bookId"`
	UserID       string    `db:"user_id" json:"userId"`
	BorrowedDate time.Time `db:"borrowed_date" json:"borrowedDate"`
}

// RecordModel wraps a database connection pool for the borrow history.
type RecordModel struct {
	DB *sqlx.DB
}

// CountForBook returns how many borrow events exist for the given book.
func (m RecordModel) CountForBook(bookID string) (int, error) {
	query := m.DB.Rebind(`SELECT COUNT(*) FROM records WHERE book_id = ?`)

	var count int
	err := m.DB.Get(&count, query, bookID)
	return count, err
}

// GetAllForUser retrieves the user's borrow history, most recent first.
func (m RecordModel) GetAllForUser(userID string) ([]*Record, error) {
	query := m.DB.Rebind(`
		SELECT record_id, book_id, user_id, borrowed_date
		FROM records
		WHERE user_id = ?
		ORDER BY borrowed_date DESC, record_id`)

	records := []*Record{}
	err := m.DB.Select(&records, query, userID)
	if err != nil {
		return nil, err
	}
	return records, nil
}
