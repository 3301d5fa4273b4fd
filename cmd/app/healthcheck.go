package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// healthCheckHandler reports 503 while the database does not answer.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	status, database, code := "available", "up", http.StatusOK
	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("database ping failed", slog.String("error", err.Error()))
		status, database, code = "unavailable", "down", http.StatusServiceUnavailable
	}

	env := envelope{
		"status": status,
		"system_info": map[string]any{
			"environment": app.config.Environment,
			"version":     app.config.Version,
			"database":    database,
			"mailer":      app.mailService != nil,
		},
	}

	err := app.writeJSON(w, code, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
