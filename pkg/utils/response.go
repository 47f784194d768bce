package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// envelope mirrors the {success, message, data} shape the Remote Service
// answers with, so the storefront sees one response format.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, envelope{Success: true, Data: data})
}

// WritePage writes a list with its paging metadata.
func WritePage(w http.ResponseWriter, status int, data, meta interface{}) {
	WriteJSON(w, status, envelope{Success: true, Data: data, Meta: meta})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, envelope{Success: true, Message: message})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, envelope{Success: false, Error: message})
}

// ReadJSON decodes a request body of at most 1MB.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}
