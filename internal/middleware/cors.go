package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows any origin to read the public routes.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
