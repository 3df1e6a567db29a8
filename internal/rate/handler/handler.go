package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bankrates/internal/domain"
	"bankrates/internal/rate"
)

type Service interface {
	Run(ctx context.Context, trigger rate.Trigger) (domain.Report, error)
	History(ctx context.Context, window time.Duration) ([]domain.RateObservation, error)
}

type Validator interface {
	ParseDays(raw string) (int, error)
}

type Handler struct {
	validator Validator
	service   Service
}

func NewRateHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}
