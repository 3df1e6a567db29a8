package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bankrates/internal/domain"
	"bankrates/internal/rate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ParseDays(raw string) (int, error) {
	args := m.Called(raw)
	return args.Int(0), args.Error(1)
}

type MockService struct{ mock.Mock }

func (m *MockService) Run(ctx context.Context, trigger rate.Trigger) (domain.Report, error) {
	args := m.Called(ctx, trigger)
	report, _ := args.Get(0).(domain.Report)
	return report, args.Error(1)
}

func (m *MockService) History(ctx context.Context, window time.Duration) ([]domain.RateObservation, error) {
	args := m.Called(ctx, window)
	history, _ := args.Get(0).([]domain.RateObservation)
	return history, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- CheckRates ---

func TestHandler_CheckRates_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	report := domain.Report{
		Outcome:  domain.OutcomeReady,
		Cheapest: domain.BankQuote{Bank: "B", Quote: domain.Quote{Sell: d("12580"), Buy: d("12600")}},
		Priciest: domain.BankQuote{Bank: "B", Quote: domain.Quote{Sell: d("12580"), Buy: d("12600")}},
		Margin:   d("20"),
		Trend: []domain.BankAverage{
			{Bank: "A", AvgSell: d("12600")},
			{Bank: "B", AvgSell: d("12591.33")},
		},
		ObservedAt: now,
	}
	mockService.On("Run", mock.Anything, rate.TriggerAPI).Return(report, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rates/check", nil)
	rr := httptest.NewRecorder()

	h.CheckRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res CheckRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "B", res.Cheapest.Bank)
	require.Equal(t, "12580", res.Cheapest.Sell)
	require.Equal(t, "12600", res.Priciest.Buy)
	require.Equal(t, "20", res.Margin)
	require.True(t, res.Favorable)
	require.Equal(t, []TrendResponse{{Bank: "A", AvgSell: "12600.00"}, {Bank: "B", AvgSell: "12591.33"}}, res.Trend)
	require.True(t, res.ObservedAt.Equal(now))
	mockService.AssertExpectations(t)
}

func TestHandler_CheckRates_NoData(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(new(MockValidator), mockService)
	mockService.On("Run", mock.Anything, rate.TriggerAPI).Return(domain.NoDataReport(), nil).Once()

	rr := httptest.NewRecorder()
	h.CheckRates(rr, httptest.NewRequest(http.MethodPost, "/api/v1/rates/check", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "no rates available right now", ej.Error)
}

func TestHandler_CheckRates_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(new(MockValidator), mockService)
	mockService.On("Run", mock.Anything, rate.TriggerAPI).Return(domain.Report{}, domain.ErrPersistence).Once()

	rr := httptest.NewRecorder()
	h.CheckRates(rr, httptest.NewRequest(http.MethodPost, "/api/v1/rates/check", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "ups, couldn't refresh rates this time", ej.Error)
}

// --- GetHistory ---

func TestHandler_GetHistory_ValidationError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ParseDays", "abc").Return(0, rate.ErrDaysNotNumber).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/history?days=abc", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, rate.ErrDaysNotNumber.Error(), ej.Error)
	mockService.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
}

func TestHandler_GetHistory_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	at := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	rows := []domain.RateObservation{
		{ID: 1, Bank: "A", Sell: d("12600"), Buy: d("12550.5"), ObservedAt: at},
		{ID: 2, Bank: "B", Sell: d("12580"), Buy: d("12600"), ObservedAt: at},
	}
	mockValidator.On("ParseDays", "7").Return(7, nil).Once()
	mockService.On("History", mock.Anything, 7*24*time.Hour).Return(rows, nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/history?days=7", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetHistoryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 7, res.Days)
	require.Len(t, res.Rates, 2)
	require.Equal(t, "12550.5", res.Rates[0].Buy)
	require.Equal(t, int64(2), res.Rates[1].ID)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_GetHistory_EmptyIsEmptyList(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ParseDays", "").Return(30, nil).Once()
	mockService.On("History", mock.Anything, 30*24*time.Hour).Return(nil, nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/history", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"days":30,"rates":[]}`, rr.Body.String())
}

func TestHandler_GetHistory_InternalError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService)

	mockValidator.On("ParseDays", "").Return(30, nil).Once()
	mockService.On("History", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/history", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "ups, couldn't load rates history this time", ej.Error)
}
