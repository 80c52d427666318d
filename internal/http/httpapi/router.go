package httpapi

import (
	"net/http"
	"time"

	"scriptbridge/internal/http/handlers"
	appmw "scriptbridge/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterOptions carries the request-pipeline knobs that come from config
// rather than from the App container.
type RouterOptions struct {
	AllowedOrigins []string
	RateLimitPerMin int
	JWTSecret      string
	DefaultLocale  string
	CountryLookup  appmw.CountryLookup
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.CORS(opts.AllowedOrigins),
		appmw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		appmw.Logger(app.Logger),
		appmw.I18N(opts.DefaultLocale, opts.CountryLookup),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(appmw.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	// Public surface
	r.Get("/", app.WebUI)
	r.Get("/docs", app.OpenAPIDocs)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/pairs", app.Pairs)
	r.Post("/v1/auth/google/verify", app.AuthGoogleVerify)

	// Signed-in surface
	r.Group(func(r chi.Router) {
		r.Use(appmw.AuthJWT(opts.JWTSecret))
		r.Get("/v1/me", app.Me)
		r.Get("/v1/credits", app.Credits)
		r.Post("/v1/convert-script", app.ConvertScript)
	})

	return r
}
