package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// blog service
	router.Handler(http.MethodGet, "/api/blogs", app.userExtractor(app.getAllBlogsHandler))
	router.Handler(http.MethodPost, "/api/blogs", app.userExtractor(app.createBlogHandler))
	router.Handler(http.MethodGet, "/api/blogs/:id", app.userExtractor(app.getBlogHandler))
	router.Handler(http.MethodPut, "/api/blogs/:id", app.userExtractor(app.updateBlogHandler))
	router.Handler(http.MethodDelete, "/api/blogs/:id", app.userExtractor(app.deleteBlogHandler))
	router.Handler(http.MethodPost, "/api/blogs/:id/comments", app.userExtractor(app.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/api/stats", app.blogStatsHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/users", app.getAllUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginUserHandler)

	if app.config.Environment == "test" {
		router.HandlerFunc(http.MethodPost, "/api/testing/reset", app.resetHandler)
	}

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router))))
}
