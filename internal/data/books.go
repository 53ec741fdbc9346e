package data

import (
	"database/sql"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	// Register the SQL dialects goqu builds queries for. The dialect is
	// selected at runtime from the driver name of the connection pool.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

// Book represents a row in the "books" table, joined with its owning Author
// on every read. HolderID is nil while the book sits on the shelf and holds
// the borrowing user's id otherwise.
type Book struct {
	ID            string    `db:"book_id" json:"id"`
	Title         string    `db:"title" json:"title"`
	DatePublished time.Time `db:"date_published" json:"datePublished"`
	AuthorID      string    `db:"author_id" json:"authorId"`
	HolderID      *string   `db:"holder_id" json:"holderId"`
	Author        Author    `json:"author"`
}

// Filters holds the optional author, pagination, and ordering criteria for
// catalog queries. String fields left empty and nil pointers mean
// "no constraint".
type Filters struct {
	AuthorFirst string // Author first name, always set together with AuthorLast
	AuthorLast  string
	AuthorID    string
	Take        *int   // Maximum number of rows to return
	Offset      *int   // Number of rows to skip
	OrderTitle  string // "asc" or "desc"
	OrderDate   string // "asc" or "desc", applies to date_published
}

// BookModel wraps a database connection pool and provides methods for
// querying the catalog and recording borrows.
type BookModel struct {
	DB *sqlx.DB
}

// Insert adds a new book row. An identifier is generated unless the caller
// already assigned one. New books start without a holder.
func (m BookModel) Insert(book *Book) error {
	if book.ID == "" {
		book.ID = NewID()
	}

	query := m.DB.Rebind(`
		INSERT INTO books (book_id, title, date_published, author_id, holder_id)
		VALUES (?, ?, ?, ?, NULL)`)

	_, err := m.DB.Exec(query, book.ID, book.Title, book.DatePublished, book.AuthorID)
	return err
}

// selectBase returns the shared select over books joined with authors.
// Dynamic WHERE/ORDER/LIMIT clauses are layered on top by the callers.
func (m BookModel) selectBase() *goqu.SelectDataset {
	return goqu.Dialect(m.DB.DriverName()).
		From(goqu.T("books").As("b")).
		Join(
			goqu.T("authors").As("a"),
			goqu.On(goqu.I("b.author_id").Eq(goqu.I("a.author_id"))),
		).
		Select(
			goqu.I("b.book_id"),
			goqu.I("b.title"),
			goqu.I("b.date_published"),
			goqu.I("b.author_id"),
			goqu.I("b.holder_id"),
			goqu.I("a.first_name"),
			goqu.I("a.last_name"),
		)
}

// applyFilters layers the optional author, ordering, and pagination criteria
// onto the dataset. Ordering always ends with book_id so pages are stable.
func applyFilters(dataset *goqu.SelectDataset, filters Filters) *goqu.SelectDataset {
	if filters.AuthorFirst != "" {
		dataset = dataset.Where(
			goqu.I("a.first_name").Eq(filters.AuthorFirst),
			goqu.I("a.last_name").Eq(filters.AuthorLast),
		)
	}
	if filters.AuthorID != "" {
		dataset = dataset.Where(goqu.I("b.author_id").Eq(filters.AuthorID))
	}

	switch filters.OrderTitle {
	case "asc":
		dataset = dataset.OrderAppend(goqu.I("b.title").Asc())
	case "desc":
		dataset = dataset.OrderAppend(goqu.I("b.title").Desc())
	}
	switch filters.OrderDate {
	case "asc":
		dataset = dataset.OrderAppend(goqu.I("b.date_published").Asc())
	case "desc":
		dataset = dataset.OrderAppend(goqu.I("b.date_published").Desc())
	}
	dataset = dataset.OrderAppend(goqu.I("b.book_id").Asc())

	if filters.Take != nil {
		dataset = dataset.Limit(uint(*filters.Take))
	}
	if filters.Offset != nil {
		dataset = dataset.Offset(uint(*filters.Offset))
	}
	return dataset
}

// GetAll retrieves the books matching the given filters, each joined with
// its author. No match yields an empty slice, never an error.
func (m BookModel) GetAll(filters Filters) ([]*Book, error) {
	dataset := applyFilters(m.selectBase(), filters)
	return m.queryBooks(dataset)
}

// likeEscaper neutralizes the LIKE metacharacters so a search term is always
// matched literally. The backslash is declared as the escape character in the
// query itself.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search retrieves books whose title contains the given substring
// (case-sensitively), narrowed further by the author filters. Wildcard
// characters in the title match only themselves.
func (m BookModel) Search(title string, filters Filters) ([]*Book, error) {
	pattern := "%" + likeEscaper.Replace(title) + "%"
	dataset := m.selectBase().Where(goqu.L("? LIKE ? ESCAPE '\\'", goqu.I("b.title"), pattern))
	dataset = applyFilters(dataset, filters)
	return m.queryBooks(dataset)
}

// queryBooks executes the dataset as a prepared statement and scans the rows.
func (m BookModel) queryBooks(dataset *goqu.SelectDataset) ([]*Book, error) {
	query, args, err := dataset.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := m.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}

	for rows.Next() {
		var book Book
		var holder sql.NullString
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.DatePublished,
			&book.AuthorID,
			&holder,
			&book.Author.FirstName,
			&book.Author.LastName,
		)
		if err != nil {
			return nil, err
		}
		if holder.Valid {
			book.HolderID = &holder.String
		}
		book.Author.ID = book.AuthorID
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// Borrow assigns the book to the user and appends a borrow record, all inside
// one transaction. The holder assignment is a single conditional update, so
// when two borrows race on the same book at most one can win; the loser sees
// zero rows affected and gets ErrBookUnavailable. A book id that matches no
// row is indistinguishable from an already-held book and reports the same
// error.
func (m BookModel) Borrow(bookID, userID string) (*Record, error) {
	tx, err := m.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		UPDATE books
		SET holder_id = ?
		WHERE book_id = ? AND holder_id IS NULL`)

	result, err := tx.Exec(query, userID, bookID)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrBookUnavailable
	}

	record := &Record{
		ID:           NewID(),
		BookID:       bookID,
		UserID:       userID,
		BorrowedDate: time.Now().UTC(),
	}

	query = tx.Rebind(`
		INSERT INTO records (record_id, book_id, user_id, borrowed_date)
		VALUES (?, ?, ?, ?)`)

	_, err = tx.Exec(query, record.ID, record.BookID, record.UserID, record.BorrowedDate)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return record, nil
}
