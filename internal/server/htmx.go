package server

import "net/http"

// isHTMXRequest checks if the request was made by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client asked for a JSON response
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return r.Header.Get("Accept") == "application/json"
}

// setHTMXRetarget changes the target element for this response
func setHTMXRetarget(w http.ResponseWriter, selector string) {
	w.Header().Set("HX-Retarget", selector)
}
