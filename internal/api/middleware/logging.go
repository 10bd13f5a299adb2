package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/connectfour/internal/dependencies/ids"
	"github.com/mcoot/connectfour/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger, gen ids.IDs) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "api")), gen)
}
