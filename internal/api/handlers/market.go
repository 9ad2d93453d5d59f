package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/InvestPro-Backend/internal/api/response"
	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
)

// MarketHandler handles HTTP requests for live quotes and market refreshes.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Quotes handles GET requests for the quotes of the last refresh.
//
// Endpoint: GET /api/market/quotes
// Response: 200 OK with QuotesResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *MarketHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.marketService.GetQuotes(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// Refresh handles POST requests to fetch quotes and the dividend calendar for every held ticker.
//
// Endpoint: POST /api/market/refresh
// Response: 200 OK with RefreshResponse
// Error: 409 Conflict if a refresh is already running
// Error: 500 Internal Server Error if the snapshot cannot be stored
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.marketService.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshInProgress) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrRefreshInProgress.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshMarket.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
