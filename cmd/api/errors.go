// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Keeping error helpers in a dedicated file makes them easy to find and extend.
package main

import (
	"log/slog"
	"net/http"
)

// logError logs an internal error at ERROR level with the request method,
// URL, and request id for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	attrs := []any{
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	}
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		attrs = append(attrs, slog.String("request_id", id))
	}
	app.logger.Error(err.Error(), attrs...)
}

// errorResponse sends a JSON message envelope with the given status code.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := envelope{"message": message}
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// invalidInputResponse sends the uniform 400 reply for any request whose
// payload fails validation. No detail is included; validation failures all
// look the same to the client.
func (app *applicationDependencies) invalidInputResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "Invalid input.")
}

// unknownErrorResponse logs a 500-level error and sends the generic message
// to the client. We never expose internal error details for security reasons.
func (app *applicationDependencies) unknownErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "An unknown error occurred.")
}

// incorrectCredentialsResponse sends the 404 reply used for both an unknown
// username and a wrong password, so the two cases cannot be told apart.
func (app *applicationDependencies) incorrectCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "Incorrect username and password combination.")
}

// notFoundResponse sends a 404 Not Found error for unregistered routes.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
