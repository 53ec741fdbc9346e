// cmd/api/books.go
// This file contains the catalog query handlers: listing and title search.
package main

import (
	"net/http"
	"strings"

	"github.com/calier/bookhaven/internal/data"
	"github.com/calier/bookhaven/internal/validator"
)

// orderByInput restricts ordering to the title and datePublished columns,
// each either "asc" or "desc".
type orderByInput struct {
	Title         *string `json:"title"`
	DatePublished *string `json:"datePublished"`
}

// bookFilterInput is the optional filter accepted by GET /books and, minus
// pagination and ordering, by POST /searchBooks.
type bookFilterInput struct {
	Author   *string       `json:"author"`
	AuthorID *string       `json:"authorId"`
	Take     *int          `json:"take"`
	Offset   *int          `json:"offset"`
	OrderBy  *orderByInput `json:"orderBy"`
}

// validateBookFilter checks the filter fields and converts them into
// data.Filters. The author name must be exactly two capitalized words, so a
// validated name always splits cleanly into first and last.
func validateBookFilter(v *validator.Validator, input *bookFilterInput) data.Filters {
	var filters data.Filters

	if input.Author != nil {
		v.Check(validator.Matches(*input.Author, validator.AuthorNameRX), "author", "must be two capitalized words")
		if first, last, ok := strings.Cut(*input.Author, " "); ok {
			filters.AuthorFirst = first
			filters.AuthorLast = last
		}
	}
	if input.AuthorID != nil {
		v.Check(validator.Matches(*input.AuthorID, validator.IDRX), "authorId", "must be a valid identifier")
		filters.AuthorID = *input.AuthorID
	}
	if input.Take != nil {
		v.Check(*input.Take >= 0, "take", "must not be negative")
		filters.Take = input.Take
	}
	if input.Offset != nil {
		v.Check(*input.Offset >= 0, "offset", "must not be negative")
		filters.Offset = input.Offset
	}
	if input.OrderBy != nil {
		if input.OrderBy.Title != nil {
			v.Check(validator.In(*input.OrderBy.Title, "asc", "desc"), "orderBy.title", "must be asc or desc")
			filters.OrderTitle = *input.OrderBy.Title
		}
		if input.OrderBy.DatePublished != nil {
			v.Check(validator.In(*input.OrderBy.DatePublished, "asc", "desc"), "orderBy.datePublished", "must be asc or desc")
			filters.OrderDate = *input.OrderBy.DatePublished
		}
	}

	return filters
}

// listBooksHandler handles GET /books.
// The filter arrives as an optional JSON body; an absent body lists the
// whole catalog. Books are returned joined with their author, and an empty
// result is a 200 with an empty list, never an error.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var input bookFilterInput

	err := app.readOptionalJSON(w, r, &input)
	if err != nil {
		app.invalidInputResponse(w, r)
		return
	}

	v := validator.New()
	filters := validateBookFilter(v, &input)
	if !v.Valid() {
		app.invalidInputResponse(w, r)
		return
	}

	books, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}

// searchBookInput is the request body for POST /searchBooks: a required
// title plus the optional author filters.
type searchBookInput struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	AuthorID *string `json:"authorId"`
}

// searchBooksHandler handles POST /searchBooks.
// It matches the title as a case-sensitive substring, optionally narrowed by
// author name or id, and always answers 200 with the (possibly empty) list.
func (app *applicationDependencies) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	var input searchBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.invalidInputResponse(w, r)
		return
	}

	v := validator.New()
	v.Check(input.Title != nil, "title", "must be provided")
	filters := validateBookFilter(v, &bookFilterInput{Author: input.Author, AuthorID: input.AuthorID})
	if !v.Valid() {
		app.invalidInputResponse(w, r)
		return
	}

	books, err := app.models.Books.Search(*input.Title, filters)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Search successful", "books": books}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}
