// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the application middleware.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → rateLimit → enableCORS → router
//
// Current endpoints:
//
//	GET  /            – liveness teapot
//	POST /login       – authenticate and return the user id
//	POST /register    – create a new user account
//	GET  /books       – list books, optionally filtered/ordered/paginated
//	POST /searchBooks – substring search on book titles
//	POST /likeBook    – connect or disconnect a user↔book like
//	POST /borrowBook  – assign a book to a user and record the borrow
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.rootHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginHandler)
	router.HandlerFunc(http.MethodPost, "/register", app.registerHandler)
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/searchBooks", app.searchBooksHandler)
	router.HandlerFunc(http.MethodPost, "/likeBook", app.likeBookHandler)
	router.HandlerFunc(http.MethodPost, "/borrowBook", app.borrowBookHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from every other layer; enableCORS sits innermost so preflight requests
	// are answered before the router can reject them.
	return app.recoverPanic(app.requestID(app.rateLimit(app.enableCORS(router))))
}
