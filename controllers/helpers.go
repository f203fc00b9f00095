// Package controllers holds the HTTP handlers. Handlers decode the request,
// call a service or store, and map errors to status codes; business rules
// live in the services package.
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
