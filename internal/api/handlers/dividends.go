package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/InvestPro-Backend/internal/api/response"
	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
	"github.com/ndewijer/InvestPro-Backend/internal/validation"
)

// DividendHandler handles HTTP requests for the dividend calendar.
type DividendHandler struct {
	dividendService *service.DividendService
}

// NewDividendHandler creates a new DividendHandler with the provided service dependency.
func NewDividendHandler(dividendService *service.DividendService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
	}
}

// Calendar handles GET requests for the days of the refreshed month with expected payments.
//
// Endpoint: GET /api/dividend/calendar
// Response: 200 OK with DividendCalendarResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *DividendHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	calendar, err := h.dividendService.GetCalendar(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDividends.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, calendar)
}

// Day handles GET requests for the payouts expected on one day of the month.
//
// Endpoint: GET /api/dividend/calendar/{day}
// Response: 200 OK with DividendDayResponse
// Error: 400 Bad Request if day is not between 1 and 31
// Error: 500 Internal Server Error if retrieval fails
func (h *DividendHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := validation.ValidateDay(chi.URLParam(r, "day"))
	if err != nil {
		respondValidationError(w, err)
		return
	}

	payouts, err := h.dividendService.GetDay(r.Context(), day)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDividends.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, payouts)
}
