package controller

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}
