package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func setupServer(cfg Config, services *Services) *http.Server {
	r := chi.NewRouter()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	r.Route(cfg.BasePath, func(r chi.Router) {
		services.Gateway.RegisterRoutes(r)

		// Viewers fetch the scene image (and the authoring tool's raw
		// documents) straight from the scene directory.
		fileServer := http.FileServer(http.Dir(cfg.SceneDir))
		r.Handle("/*", http.StripPrefix(cfg.BasePath, fileServer))
	})

	setupHealthCheck(r)

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: c.Handler(r),
	}
}

func setupHealthCheck(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
}
