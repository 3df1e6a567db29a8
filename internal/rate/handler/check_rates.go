package handler

import (
	"net/http"
	"time"

	"bankrates/internal/rate"

	"github.com/sirupsen/logrus"
)

type BankRateResponse struct {
	Bank string `json:"bank" example:"Kapitalbank"`
	Sell string `json:"sell" example:"12580"`
	Buy  string `json:"buy" example:"12600"`
}

type TrendResponse struct {
	Bank    string `json:"bank" example:"Kapitalbank"`
	AvgSell string `json:"avg_sell" example:"12591.33"`
}

type CheckRatesResponse struct {
	Cheapest   BankRateResponse `json:"cheapest"`
	Priciest   BankRateResponse `json:"priciest"`
	Margin     string           `json:"margin" example:"20"`
	Favorable  bool             `json:"favorable" example:"true"`
	Trend      []TrendResponse  `json:"trend"`
	ObservedAt time.Time        `json:"observed_at" example:"2025-01-02T15:04:05Z"`
}

// CheckRates godoc
// @Summary Check current rates
// @Description Scrape every configured bank now, store the snapshot and report where to buy and sell
// @Tags Rates
// @Produce json
// @Success 200 {object} CheckRatesResponse
// @Failure 503 {object} errorResponse "no bank published a usable rate"
// @Failure 500 {object} errorResponse
// @Router /rates/check [post]
func (h *Handler) CheckRates(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Run(r.Context(), rate.TriggerAPI)
	if err != nil {
		msg := "ups, couldn't refresh rates this time"
		logrus.WithError(err).WithField("handler", "CheckRates").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	if !report.Ready() {
		writeError(w, http.StatusServiceUnavailable, "no rates available right now")
		return
	}

	trend := make([]TrendResponse, 0, len(report.Trend))
	for _, avg := range report.Trend {
		trend = append(trend, TrendResponse{Bank: avg.Bank, AvgSell: avg.AvgSell.StringFixed(2)})
	}

	writeJSON(w, http.StatusOK, CheckRatesResponse{
		Cheapest: BankRateResponse{
			Bank: report.Cheapest.Bank,
			Sell: report.Cheapest.Sell.String(),
			Buy:  report.Cheapest.Buy.String(),
		},
		Priciest: BankRateResponse{
			Bank: report.Priciest.Bank,
			Sell: report.Priciest.Sell.String(),
			Buy:  report.Priciest.Buy.String(),
		},
		Margin:     report.Margin.String(),
		Favorable:  report.Favorable(),
		Trend:      trend,
		ObservedAt: report.ObservedAt,
	})
}
