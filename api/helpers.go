package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
)

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// production suppresses stack traces in error bodies.
var production bool

// SetProduction toggles stack suppression in error responses.
func SetProduction(p bool) {
	production = p
}

type errorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError sends the JSON error body. The status is always set explicitly
// here so nothing falls through to a default 200.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, errorResponse{Message: message}, status)
}

// writeServerError logs the cause and sends a 500, attaching the stack
// outside production.
func writeServerError(w http.ResponseWriter, err error) {
	logger.Error("internal error", slog.Any("err", err))
	resp := errorResponse{Message: "internal server error"}
	if !production {
		resp.Stack = err.Error() + "\n" + string(debug.Stack())
	}
	writeJSON(w, resp, http.StatusInternalServerError)
}
