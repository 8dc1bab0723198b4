package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON はJSONレスポンスを書き込みます。
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// writeJSONError はJSON形式のエラーレスポンスを書き込みます。
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
