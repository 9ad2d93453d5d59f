package handlers

import (
	"net/http"

	"github.com/ndewijer/InvestPro-Backend/internal/api/response"
	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
)

// NewsHandler handles HTTP requests for headlines about held tickers.
type NewsHandler struct {
	newsService *service.NewsService
}

// NewNewsHandler creates a new NewsHandler with the provided service dependency.
func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
	}
}

// News handles GET requests for recent news grouped by date, newest first.
//
// Endpoint: GET /api/news
// Response: 200 OK with array of NewsGroup
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *NewsHandler) News(w http.ResponseWriter, r *http.Request) {
	groups, err := h.newsService.GetNews(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveNews.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, groups)
}
