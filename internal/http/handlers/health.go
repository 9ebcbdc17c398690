package handlers

import "net/http"

// Health reports that the process is serving requests
func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Server is running"})
}
