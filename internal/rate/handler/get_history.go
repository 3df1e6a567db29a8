package handler

import (
	"net/http"
	"time"

	"bankrates/internal/rate"

	"github.com/sirupsen/logrus"
)

type ObservationResponse struct {
	ID         int64     `json:"id" example:"42"`
	Bank       string    `json:"bank" example:"Kapitalbank"`
	Sell       string    `json:"sell" example:"12580"`
	Buy        string    `json:"buy" example:"12600"`
	ObservedAt time.Time `json:"observed_at" example:"2025-01-02T15:04:05Z"`
}

type GetHistoryResponse struct {
	Days  int                   `json:"days" example:"30"`
	Rates []ObservationResponse `json:"rates"`
}

// GetHistory godoc
// @Summary Rates history
// @Description List every stored observation of the last N days, oldest first
// @Tags Rates
// @Produce json
// @Param days query int false "Window in days (1-90)" default(30)
// @Success 200 {object} GetHistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	days, err := h.validator.ParseDays(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.service.History(r.Context(), rate.Days(days))
	if err != nil {
		msg := "ups, couldn't load rates history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "days": days}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	rates := make([]ObservationResponse, 0, len(history))
	for _, o := range history {
		rates = append(rates, ObservationResponse{
			ID:         o.ID,
			Bank:       o.Bank,
			Sell:       o.Sell.String(),
			Buy:        o.Buy.String(),
			ObservedAt: o.ObservedAt,
		})
	}
	writeJSON(w, http.StatusOK, GetHistoryResponse{Days: days, Rates: rates})
}
