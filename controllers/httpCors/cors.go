package httpCors

import (
	"github.com/rs/cors"
)

func CorsSettings(allowedOrigins []string, debug bool) *cors.Cors {
	c := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"Authorization", "X-Request-ID"},
		Debug:            debug,
	})
	return c
}
