package http

import "net/http"

// writeRouteNotFound mirrors the catch-all for unmatched routes: a JSON 404
// naming the path.
func writeRouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route "+r.URL.Path+" not found")
}
