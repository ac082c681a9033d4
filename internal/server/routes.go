package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Generic value endpoints (allow-listed column access)
	mux.HandleFunc("/api/get-value", s.app.ValueHandler.HandleGet)
	mux.HandleFunc("/api/set-value", s.app.ValueHandler.HandleSet)

	// Fixed-column endpoints
	mux.HandleFunc("/api/user-api-value", s.app.APIValueHandler.ServeHTTP)
	mux.HandleFunc("/api/user-info", s.app.UserInfoHandler.HandleInfo)
	mux.HandleFunc("/api/user-info-check", s.app.UserInfoHandler.HandleCheck)

	// Unauthenticated endpoints
	mux.HandleFunc("/api/version-check", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
