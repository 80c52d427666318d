package middleware

import "net/http"

// CORS applies cross-origin headers and answers preflight requests before any
// handler (or the upstream model) is reached. With no configured origins the
// policy is wide open; otherwise only listed origins are admitted.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allow[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := len(allow) == 0
			if !allowed {
				_, allowed = allow[origin]
			}
			if allowed {
				value := origin
				if len(allow) == 0 {
					value = "*"
				} else {
					w.Header().Set("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				if value != "" {
					w.Header().Set("Access-Control-Allow-Origin", value)
				}
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Locale, X-Request-ID")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
