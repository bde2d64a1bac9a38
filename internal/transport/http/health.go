package http

import "net/http"

const apiVersion = "1.0.0"

type healthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// HandleRoot serves the health check on exactly "/" and the JSON 404 for
// every route no other handler claimed.
func HandleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" || r.Method != http.MethodGet {
			writeRouteNotFound(w, r)
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Success: true,
			Message: "Community Service Booking API is running",
			Version: apiVersion,
		})
	}
}
