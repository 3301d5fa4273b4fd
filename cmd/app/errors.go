package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

var errTokenMissing = errors.New("token missing or invalid")

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

// errorResponse writes the response for an error returned by a service.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr common.ValidationError

	switch {
	case errors.Is(err, common.ErrMalformedID):
		app.badRequestErrorResponse(w, r, err)
	case errors.As(err, &validationErr):
		app.badRequestErrorResponse(w, r, validationErr)
	case errors.Is(err, userservice.ErrPasswordRequired):
		app.badRequestErrorResponse(w, r, err)
	case errors.Is(err, userservice.ErrDuplicateUsername):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "expected `username` to be unique")
	case errors.Is(err, common.ErrRecordNotFound):
		app.recordNotFoundResponse(w, r)
	case errors.Is(err, userservice.ErrInvalidCredentials),
		errors.Is(err, userservice.ErrInvalidToken),
		errors.Is(err, blogservice.ErrDeleteForbidden),
		errors.Is(err, blogservice.ErrUpdateForbidden),
		errors.Is(err, errTokenMissing):
		app.unauthorizedErrorResponse(w, r, err)
	case errors.Is(err, blogservice.ErrUserForeignKey):
		app.unauthorizedErrorResponse(w, r, errTokenMissing)
	case errors.Is(err, blogservice.ErrEditConflict):
		app.editConflictResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

// recordNotFoundResponse answers a lookup of a missing record with an empty 404.
func (app *application) recordNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusNotFound, nil, nil)
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "unknown endpoint")
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, err.Error())
}

func (app *application) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	message := "unable to update the record due to an edit conflict, please try again"
	app.writeErrorResponse(w, r, http.StatusConflict, message)
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
