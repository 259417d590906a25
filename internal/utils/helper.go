package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ParseID parses a positive integer primary key.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func WriteJSONError(w http.ResponseWriter, code, message string, status int) {
	WriteJSON(w, status, ErrorBody{Code: code, Error: message})
}
