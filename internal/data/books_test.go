package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(books []*Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestGetAllNoFilter(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.GetAll(Filters{})
	require.NoError(t, err)
	assert.Len(t, books, 5)

	// Every book comes joined with its author.
	for _, book := range books {
		assert.NotEmpty(t, book.Author.FirstName)
		assert.NotEmpty(t, book.Author.LastName)
		assert.Equal(t, book.AuthorID, book.Author.ID)
		assert.Nil(t, book.HolderID)
	}
}

func TestGetAllAuthorNameFilter(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.GetAll(Filters{AuthorFirst: "Jane", AuthorLast: "Doe"})
	require.NoError(t, err)

	require.Len(t, books, 2)
	for _, book := range books {
		assert.Equal(t, "Jane", book.Author.FirstName)
		assert.Equal(t, "Doe", book.Author.LastName)
	}
}

func TestGetAllAuthorNameFilterNoMatch(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.GetAll(Filters{AuthorFirst: "Jane", AuthorLast: "Smith"})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestGetAllAuthorIDFilter(t *testing.T) {
	models := testModels(t)
	fixture := seedCatalog(t, models)

	books, err := models.Books.GetAll(Filters{AuthorID: fixture.Rowling})
	require.NoError(t, err)

	require.Len(t, books, 2)
	for _, book := range books {
		assert.Equal(t, fixture.Rowling, book.AuthorID)
	}
}

func TestGetAllOrdering(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.GetAll(Filters{OrderTitle: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"A Field Guide to Shelving",
		"Cataloging for Beginners",
		"Harry Potter and the Chamber of Secrets",
		"Harry Potter and the Philosopher's Stone",
		"The Quiet Stacks",
	}, titles(books))

	books, err = models.Books.GetAll(Filters{OrderDate: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "The Quiet Stacks", books[0].Title)
	assert.Equal(t, "Harry Potter and the Philosopher's Stone", books[len(books)-1].Title)
}

func TestGetAllPagination(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	take, offset := 2, 1
	books, err := models.Books.GetAll(Filters{OrderTitle: "asc", Take: &take, Offset: &offset})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Cataloging for Beginners",
		"Harry Potter and the Chamber of Secrets",
	}, titles(books))
}

func TestSearchSubstring(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.Search("Harry", Filters{})
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestSearchIsCaseSensitive(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.Search("harry", Filters{})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.Search("Necronomicon", Filters{})
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestSearchTreatsWildcardsAsLiterals(t *testing.T) {
	models := testModels(t)
	fixture := seedCatalog(t, models)

	extra := []string{"100% Cotton Binding", "shelf_map Reference"}
	for _, title := range extra {
		book := &Book{
			Title:         title,
			DatePublished: time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC),
			AuthorID:      fixture.JaneDoe,
		}
		require.NoError(t, models.Books.Insert(book))
	}

	// "%" matches only a literal percent sign, not any run of characters.
	books, err := models.Books.Search("n%", Filters{})
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = models.Books.Search("100% C", Filters{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "100% Cotton Binding", books[0].Title)

	// "_" matches only a literal underscore, not any single character.
	books, err = models.Books.Search("B_g", Filters{})
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = models.Books.Search("shelf_map", Filters{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "shelf_map Reference", books[0].Title)
}

func TestSearchWithAuthorFilter(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)

	books, err := models.Books.Search("the", Filters{AuthorFirst: "Joanne", AuthorLast: "Rowling"})
	require.NoError(t, err)

	require.Len(t, books, 2)
	for _, book := range books {
		assert.Contains(t, book.Title, "Harry Potter")
	}
}

func TestBorrowAssignsHolderAndAppendsRecord(t *testing.T) {
	models := testModels(t)
	fixture := seedCatalog(t, models)
	userID := seedUser(t, models, "u1")

	record, err := models.Books.Borrow(fixture.Potter1, userID)
	require.NoError(t, err)
	assert.Equal(t, fixture.Potter1, record.BookID)
	assert.Equal(t, userID, record.UserID)
	assert.False(t, record.BorrowedDate.IsZero())

	books, err := models.Books.GetAll(Filters{AuthorID: fixture.Rowling})
	require.NoError(t, err)
	for _, book := range books {
		if book.ID == fixture.Potter1 {
			require.NotNil(t, book.HolderID)
			assert.Equal(t, userID, *book.HolderID)
		}
	}

	count, err := models.Records.CountForBook(fixture.Potter1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	history, err := models.Records.GetAllForUser(userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, record.ID, history[0].ID)
}

func TestBorrowHeldBookFails(t *testing.T) {
	models := testModels(t)
	fixture := seedCatalog(t, models)
	firstUser := seedUser(t, models, "u1")
	secondUser := seedUser(t, models, "u2")

	_, err := models.Books.Borrow(fixture.Potter1, firstUser)
	require.NoError(t, err)

	// The conditional update matches no row while a holder is set, so the
	// competing borrow loses regardless of interleaving.
	_, err = models.Books.Borrow(fixture.Potter1, secondUser)
	require.ErrorIs(t, err, ErrBookUnavailable)

	// The losing attempt must not leave a record behind.
	count, err := models.Records.CountForBook(fixture.Potter1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The original holder is untouched.
	books, err := models.Books.GetAll(Filters{})
	require.NoError(t, err)
	for _, book := range books {
		if book.ID == fixture.Potter1 {
			require.NotNil(t, book.HolderID)
			assert.Equal(t, firstUser, *book.HolderID)
		}
	}
}

func TestBorrowMissingBookFails(t *testing.T) {
	models := testModels(t)
	seedCatalog(t, models)
	userID := seedUser(t, models, "u1")

	_, err := models.Books.Borrow("c000000000000000000000000", userID)
	require.ErrorIs(t, err, ErrBookUnavailable)
}
