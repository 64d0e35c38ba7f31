package httpx

import "net/http"

// healthHandler answers load balancer probes. It is unauthenticated and never
// touches the store, so it reports process liveness only.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
