package handlers

import (
	"net/http"

	"github.com/ndewijer/InvestPro-Backend/internal/api/response"
	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
)

// TaxHandler handles HTTP requests for the yearly tax declaration text.
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new TaxHandler with the provided service dependency.
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// Report handles GET requests for the "Bens e Direitos" text of the current positions.
// Generation failures are reported inside the body with generated=false.
//
// Endpoint: GET /api/tax/report
// Response: 200 OK with TaxReportResponse
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *TaxHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.taxService.GetTaxReport(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGenerateTaxReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
