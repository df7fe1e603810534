package middleware

import (
	"net/http"
	"strconv"

	"github.com/rs/cors"
)

// corsMaxAge is how long, in seconds, a browser may reuse a preflight answer.
const corsMaxAge = 600

// corsMethods are the verbs the board API serves. PATCH is not one of them.
var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}

// corsRequestHeaders covers JSON bodies, multipart uploads and the bearer session token.
var corsRequestHeaders = []string{"Content-Type", "Authorization"}

// corsExposedHeaders lets the dashboard read the request id chi assigns,
// which is the key to the matching server log line.
var corsExposedHeaders = []string{"X-Request-Id"}

// CORSMaxAge is the Access-Control-Max-Age value sent on preflights.
var CORSMaxAge = strconv.Itoa(corsMaxAge)

// NewCORSHandler returns the CORS middleware for the dashboard origins in
// allowedOrigins. Each entry must be a full origin (scheme + host, no trailing slash).
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: corsMethods,
		AllowedHeaders: corsRequestHeaders,
		ExposedHeaders: corsExposedHeaders,
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
