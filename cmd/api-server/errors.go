package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/avoronov/cadscreen/internal/ctxstore"
	"github.com/avoronov/cadscreen/internal/response"
	"github.com/avoronov/cadscreen/internal/validator"
)

func (app *application) reportServerError(r *http.Request, err error) {
	var (
		method = r.Method
		url    = r.URL.String()
	)

	logger := app.logger
	if tid, ok := ctxstore.From[string](r.Context(), _traceIDKey); ok {
		logger = logger.With(_traceIDKey.String(), tid)
	}

	requestAttrs := []any{"method", method, "url", url}
	logger.Error(err.Error(), requestAttrs...)
}

func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	message = strings.ToUpper(message[:1]) + message[1:]

	err := response.JSONWithHeaders(w, status, response.JSONObject{"error": message}, headers)
	if err != nil {
		app.reportServerError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.reportServerError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorMessage(w, r, http.StatusInternalServerError, message, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	app.errorMessage(w, r, http.StatusNotFound, message, nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorMessage(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, v validator.Validator) {
	err := response.JSON(w, http.StatusUnprocessableEntity, v)
	if err != nil {
		app.serverError(w, r, err)
	}
}

// invalidCredentials is deliberately generic: it must not reveal whether the
// username or the password was wrong.
func (app *application) invalidCredentials(w http.ResponseWriter, r *http.Request) {
	message := "invalid username or password"
	app.errorMessage(w, r, http.StatusUnauthorized, message, nil)
}

// authenticationRequired is the single deny signal of the access control
// gate: API surfaces get a 401, the web surface a redirect to the login page.
func (app *application) authenticationRequired(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		app.errorMessage(w, r, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/doctor/")
}
