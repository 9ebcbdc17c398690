package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// envelope is the JSON shape of every API response
type envelope struct {
	Success          bool   `json:"success"`
	Message          string `json:"message,omitempty"`
	Data             any    `json:"data,omitempty"`
	Count            *int   `json:"count,omitempty"`
	Token            string `json:"token,omitempty"`
	ExpiresIn        string `json:"expiresIn,omitempty"`
	ExpiresInSeconds int64  `json:"expiresInSeconds,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// respondWithError sends a JSON error envelope
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, envelope{Success: false, Message: message})
}

// respondInternal logs the real cause and sends a fixed message to the client
func respondInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, message, err)
	respondWithError(w, http.StatusInternalServerError, message)
}

// decodeJSON reads a single JSON object from the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("decode body: unexpected data after JSON object")
	}
	return nil
}
