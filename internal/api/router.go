package api

import (
	"net/http"

	_ "bankrates/docs"
	"bankrates/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, metricsHandler http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Method(http.MethodGet, "/metrics", metricsHandler)

	router.Post("/api/v1/rates/check", rateHandler.CheckRates)
	router.Get("/api/v1/rates/history", rateHandler.GetHistory)
	return router
}
