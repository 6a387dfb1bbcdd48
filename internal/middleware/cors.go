package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors reflects any origin when origins is empty. Credentials are allowed
// so the client cookies travel with cross-origin requests.
func Cors(origins []string) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		options.AllowOriginFunc = func(string) bool { return true }
	} else {
		options.AllowedOrigins = origins
	}
	return cors.New(options).Handler
}
