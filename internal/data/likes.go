package data

import "github.com/jmoiron/sqlx"

// LikeModel manages the many-to-many liked relation between users and books,
// stored in the "book_likes" table keyed on the (user_id, book_id) pair.
type LikeModel struct {
	DB *sqlx.DB
}

// Connect adds the book to the user's liked set. Connecting a pair that is
// already present is a no-op, so repeated likes leave exactly one row.
// References to ids that do not exist are rejected by the foreign keys.
func (m LikeModel) Connect(userID, bookID string) error {
	query := m.DB.Rebind(`
		INSERT INTO book_likes (user_id, book_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, book_id) DO NOTHING`)

	_, err := m.DB.Exec(query, userID, bookID)
	return err
}

// Disconnect removes the book from the user's liked set. Disconnecting a
// pair that was never connected is a no-op.
func (m LikeModel) Disconnect(userID, bookID string) error {
	query := m.DB.Rebind(`
		DELETE FROM book_likes
		WHERE user_id = ? AND book_id = ?`)

	_, err := m.DB.Exec(query, userID, bookID)
	return err
}

// CountForUser returns how many books the user currently likes.
func (m LikeModel) CountForUser(userID string) (int, error) {
	query := m.DB.Rebind(`SELECT COUNT(*) FROM book_likes WHERE user_id = ?`)

	var count int
	err := m.DB.Get(&count, query, userID)
	return count, err
}
