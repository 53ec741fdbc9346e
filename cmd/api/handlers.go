// cmd/api/handlers.go
// This file contains the root endpoint and the authentication handlers.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models.
package main

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/calier/bookhaven/internal/data"
	"github.com/calier/bookhaven/internal/validator"
)

// credentialsInput is the request body for both /register and /login.
// The fields are pointers so a missing field can be told apart from an
// empty string; both must be present, with no further format constraint.
type credentialsInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// validate checks that both credential fields were supplied.
func (input *credentialsInput) validate(v *validator.Validator) {
	v.Check(input.Username != nil, "username", "must be provided")
	v.Check(input.Password != nil, "password", "must be provided")
}

// rootHandler handles GET /.
// It answers 418 with a greeting, which doubles as a liveness probe.
func (app *applicationDependencies) rootHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusTeapot, envelope{"message": "Hello, world!"}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}

// registerHandler handles POST /register.
// It hashes the password, refuses usernames that are already taken with a
// 409, and otherwise creates the user and responds with the new id.
func (app *applicationDependencies) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.invalidInputResponse(w, r)
		return
	}

	v := validator.New()
	input.validate(v)
	if !v.Valid() {
		app.invalidInputResponse(w, r)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), app.config.bcryptCost)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
		return
	}

	// The duplicate check is keyed on the username alone; the stored hash
	// plays no part in it.
	_, err = app.models.Users.GetByUsername(*input.Username)
	switch {
	case err == nil:
		app.errorResponse(w, r, http.StatusConflict, "User already exists.")
		return
	case !errors.Is(err, data.ErrRecordNotFound):
		app.unknownErrorResponse(w, r, err)
		return
	}

	user := &data.User{
		Username:     *input.Username,
		PasswordHash: string(hash),
	}

	err = app.models.Users.Insert(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateUsername):
			// A concurrent registration slipped in between the check above
			// and the insert; report it as the same conflict.
			app.errorResponse(w, r, http.StatusConflict, "User already exists.")
		default:
			app.unknownErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "User created successfully", "userId": user.ID}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}

// loginHandler handles POST /login.
// It looks the user up by username only, compares the password against the
// stored bcrypt hash, and returns the user id on success. No session or
// token is issued; the caller is responsible for retaining the id.
func (app *applicationDependencies) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.invalidInputResponse(w, r)
		return
	}

	v := validator.New()
	input.validate(v)
	if !v.Valid() {
		app.invalidInputResponse(w, r)
		return
	}

	user, err := app.models.Users.GetByUsername(*input.Username)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.incorrectCredentialsResponse(w, r)
		default:
			app.unknownErrorResponse(w, r, err)
		}
		return
	}

	// CompareHashAndPassword runs in constant time for a given cost.
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.Password))
	if err != nil {
		app.incorrectCredentialsResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Login successful", "userId": user.ID}, nil)
	if err != nil {
		app.unknownErrorResponse(w, r, err)
	}
}
