// Package respond writes JSON response bodies in the shapes the API clients
// expect: payloads as-is, error bodies as {"msg": …} or {"message": …}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Msg writes {"msg": text}, the body shape used on the CRUD paths.
func Msg(w http.ResponseWriter, status int, text string) {
	JSON(w, status, map[string]string{"msg": text})
}

// Message writes {"message": text}, the body shape used on the send path.
func Message(w http.ResponseWriter, status int, text string) {
	JSON(w, status, map[string]string{"message": text})
}
