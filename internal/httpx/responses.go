package httpx

import (
	"encoding/json"
	"net/http"
)

// The wire envelope is uniform across the API: successes carry
// {"success":true,"data":...} plus optional top-level extras such as
// stats or count; failures carry {"success":false,"message":"..."}.

func writeJSON(w http.ResponseWriter, statusCode int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccess(w http.ResponseWriter, statusCode int, data any, extras map[string]any) {
	body := map[string]any{
		"success": true,
	}
	if data != nil {
		body["data"] = data
	}
	for k, v := range extras {
		body[k] = v
	}
	writeJSON(w, statusCode, body)
}

func JSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"message": message,
	})
}
