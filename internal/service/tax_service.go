package service

import (
	"context"
	"strings"

	"github.com/phuslu/log"

	"github.com/ndewijer/InvestPro-Backend/internal/market"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// Messages returned in place of a generated tax report.
const (
	TaxReportEmptyPortfolio = "Adicione ativos na carteira para gerar o relatório."
	TaxReportUnavailable    = "Relatório temporariamente indisponível."
	TaxReportFailed         = "Erro ao processar relatório fiscal."
)

// TaxService produces the "Bens e Direitos" declaration text of the current positions.
type TaxService struct {
	portfolioService *PortfolioService
	gateway          market.Gateway
}

// NewTaxService creates a new TaxService.
func NewTaxService(portfolioService *PortfolioService, gateway market.Gateway) *TaxService {
	return &TaxService{
		portfolioService: portfolioService,
		gateway:          gateway,
	}
}

// GetTaxReport generates the declaration text. Generation failures are reported in
// the response text with Generated set to false; only ledger failures return an error.
func (s *TaxService) GetTaxReport(ctx context.Context) (model.TaxReportResponse, error) {
	summaries, _, err := s.portfolioService.LoadPositions(ctx)
	if err != nil {
		return model.TaxReportResponse{}, err
	}

	if len(summaries) == 0 {
		return model.TaxReportResponse{Report: TaxReportEmptyPortfolio}, nil
	}

	report, err := s.gateway.TaxReport(ctx, summaries)
	if err != nil {
		log.Error().Err(err).Int("positions", len(summaries)).Msg("Tax report generation failed")
		return model.TaxReportResponse{Report: TaxReportFailed}, nil
	}

	if strings.TrimSpace(report) == "" {
		return model.TaxReportResponse{Report: TaxReportUnavailable}, nil
	}

	return model.TaxReportResponse{Report: report, Generated: true}, nil
}
