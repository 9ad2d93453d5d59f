package handlers

import (
	"net/http"

	"github.com/ndewijer/InvestPro-Backend/internal/api/response"
	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the derived portfolio views.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Summary handles GET requests for the dashboard: positions, totals and the last market refresh.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummaryResponse
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.GetPortfolioSummary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Positions handles GET requests for every position sorted by ticker.
//
// Endpoint: GET /api/portfolio/positions
// Response: 200 OK with array of PositionResponse
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) Positions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.portfolioService.GetPositions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Charts handles GET requests for the analysis series.
//
// Endpoint: GET /api/portfolio/charts
// Response: 200 OK with ChartsResponse
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) Charts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.portfolioService.GetPortfolioCharts(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioCharts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, charts)
}
