package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smartewaste/ewaste-backend/internal/apperrors"
)

type errBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError emits the {"error": msg} envelope with an explicit status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errBody{Error: msg})
}

// WriteErr maps an error through the taxonomy; unknown errors are logged and
// masked as internal.
func WriteErr(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	msg := err.Error()
	if apperrors.KindOf(err) == apperrors.KindInternal {
		slog.Error("request failed", "err", err)
		msg = "internal error"
	}
	WriteError(w, status, msg)
}
