package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hindipath/internal/apperr"
	"hindipath/internal/logger"
)

// respondWithError writes {"error": message} with the status mapped from err.
// Internal and upstream failures are logged with their cause.
func respondWithError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := apperr.As(err)
	if appErr.Kind == apperr.KindInternal || appErr.Kind == apperr.KindUpstream {
		log.Error("request failed", "status", appErr.Status, "error", err)
	}

	writeJSON(w, appErr.Status, map[string]string{"error": appErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation(MsgInvalidRequest)
	}
	return nil
}
