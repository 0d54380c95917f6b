package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
	"unicode"
)

// maxPortCodeLength is the longest token still classified as a port code
const maxPortCodeLength = 5

// respondWithJSON writes the payload as a JSON response with the given status
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("API Error: encoding response failed: %v", err)
	}
}

// respondWithError logs the error and sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error [%d]: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// isPortCode classifies an endpoint token: a token of at most five
// characters with no lowercase letters is treated as a port code, anything
// else as a region slug.
func isPortCode(token string) bool {
	if len(token) > maxPortCodeLength {
		return false
	}
	for _, r := range token {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// isValidDate reports whether the value is a date in strict YYYY-MM-DD form
func isValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
