package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/kasboek/backend/src/version"
)

// HandleGetVersion reports the backend build version.
func HandleGetVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": version.Version})
}
