// cmd/api/relations.go
// This file contains the handlers tying users to books: likes and borrows.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/calier/bookhaven/internal/data"
	"github.com/calier/bookhaven/internal/validator"
)

// likeBookInput is the request body for POST /likeBook. A missing dislike
// field defaults to false, i.e. a like.
type likeBookInput struct {
	UserID  *string `json:"userId"`
	BookID  *string `json:"bookId"`
	Dislike *bool   `json:"dislike"`
}

// borrowBookInput is the request body for POST /borrowBook.
type borrowBookInput struct {
	UserID *string `json:"userId"`
	BookID *string `json:"bookId"`
}

// checkEntityPair validates that both ids are present and match the
// identifier format.
func checkEntityPair(v *validator.Validator, userID, bookID *string) {
	v.Check(userID != nil && validator.Matches(*userID, validator.IDRX), "userId", "must be a valid identifier")
	v.Check(bookID != nil && validator.Matches(*bookID, validator.IDRX), "bookId", "must be a valid identifier")
}

// likeBookHandler handles POST /likeBook.
// With dislike false (or absent) the book is connected to the user's liked
// set; with dislike true it is disconnected. Both directions are idempotent:
// liking an already-liked book or disliking a never-liked one succeeds
// without effect. The ids are not checked for existence beforehand; a
// dangling reference is rejected by the datastore and surfaces as a 500.
func (app *applicationDependencies) likeBookHandler(w http.ResponseWriter, r *http.Request) {
	var input likeBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.invalidInputResponse(w, r)
		return
	}

	v := validator.New()
	checkEntityPair(v, input.UserID, input.BookID)
	if !v.Valid() {
		app.invalidInputResponse(w, r)
		return
	}

	dislike := input.Dislike != nil && *input.Dislike

	var message string
	if dislike {
		err = app.models.Likes.Disconnect(*input.UserID, *input.BookID)
		message = "Book disliked successfully"
	} else {
		err = app.models.Likes.Connect(*input.UserID, *input.BookID)
		message = "Book liked successfully"
	}
	if err != nil {
		app.unknownErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": message}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}

// borrowBookHandler handles POST /borrowBook.
// It verifies the user exists, then assigns the book's holder and appends a
// borrow record in a single transaction. A book that does not exist and a
// book that is already held are reported identically.
func (app *applicationDependencies) borrowBookHandler(w http.ResponseWriter, r *http.Request) {
	var input borrowBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.invalidInputResponse(w, r)
		return
	}

	v := validator.New()
	checkEntityPair(v, input.UserID, input.BookID)
	if !v.Valid() {
		app.invalidInputResponse(w, r)
		return
	}

	exists, err := app.models.Users.Exists(*input.UserID)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.errorResponse(w, r, http.StatusBadRequest, "User doesn't exist.")
		return
	}

	_, err = app.models.Books.Borrow(*input.BookID, *input.UserID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrBookUnavailable):
			app.errorResponse(w, r, http.StatusBadRequest, "Book doesn't exist or someone is already borrowing it.")
		default:
			app.unknownErrorResponse(w, r, err)
		}
		return
	}

	message := fmt.Sprintf("Successfully borrowed book %s", *input.BookID)
	err = app.writeJSON(w, http.StatusOK, envelope{"message": message}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}
