package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/testutil"
)

func newPortfolioHandler(t *testing.T) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewPortfolioHandler(testutil.NewTestPortfolioService(t, db)), db
}

func TestPortfolioHandler_Summary(t *testing.T) {
	t.Run("values positions at the stored quotes", func(t *testing.T) {
		handler, db := newPortfolioHandler(t)

		testutil.NewTransaction().Buy(100, 10).Build(t, db)
		testutil.NewTransaction().WithTicker("MXRF11").WithAssetType(model.AssetRealEstateFund).Buy(10, 9).Build(t, db)
		testutil.SaveSnapshot(t, db, []model.Quote{{Ticker: "PETR4", Price: 12, ChangePercent: 1.5}}, nil)

		w := httptest.NewRecorder()
		handler.Summary(w, httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		summary := testutil.DecodeJSON[model.PortfolioSummaryResponse](t, w)
		if len(summary.Positions) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(summary.Positions))
		}

		// Sorted by ticker: MXRF11 before PETR4.
		mxrf, petr := summary.Positions[0], summary.Positions[1]
		if mxrf.HasQuote || mxrf.MarketValue != 90 {
			t.Errorf("Expected unquoted MXRF11 valued at cost 90, got %+v", mxrf)
		}
		if !petr.HasQuote || petr.MarketValue != 1200 || petr.Profit != 200 || petr.ProfitPercentage != 20 {
			t.Errorf("Unexpected PETR4 position: %+v", petr)
		}

		if summary.Totals.Invested != 1090 || summary.Totals.Patrimony != 1290 {
			t.Errorf("Unexpected totals: %+v", summary.Totals)
		}
		if summary.LastUpdate == nil {
			t.Error("Expected lastUpdate from the stored snapshot")
		}
	})

	t.Run("empty ledger yields zero totals and no refresh time", func(t *testing.T) {
		handler, _ := newPortfolioHandler(t)

		w := httptest.NewRecorder()
		handler.Summary(w, httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		summary := testutil.DecodeJSON[model.PortfolioSummaryResponse](t, w)
		if summary.Positions == nil || len(summary.Positions) != 0 {
			t.Errorf("Expected empty positions array, got %v", summary.Positions)
		}
		if summary.Totals.ProfitPercentage != 0 {
			t.Errorf("Expected 0%% profit, got %v", summary.Totals.ProfitPercentage)
		}
		if summary.LastUpdate != nil {
			t.Errorf("Expected nil lastUpdate, got %v", summary.LastUpdate)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := newPortfolioHandler(t)
		db.Close()

		w := httptest.NewRecorder()
		handler.Summary(w, httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_Positions(t *testing.T) {
	t.Run("fully sold tickers are not listed", func(t *testing.T) {
		handler, db := newPortfolioHandler(t)

		testutil.NewTransaction().Buy(10, 20).Build(t, db)
		testutil.NewTransaction().Sell(10, 25).OnDate("2026-01-05").Build(t, db)
		testutil.NewTransaction().WithTicker("VALE3").Buy(5, 60).Build(t, db)

		w := httptest.NewRecorder()
		handler.Positions(w, httptest.NewRequest(http.MethodGet, "/api/portfolio/positions", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		positions := testutil.DecodeJSON[[]model.PositionResponse](t, w)
		if len(positions) != 1 || positions[0].Ticker != "VALE3" {
			t.Errorf("Expected only VALE3, got %+v", positions)
		}
	})
}

func TestPortfolioHandler_Charts(t *testing.T) {
	t.Run("returns chart series", func(t *testing.T) {
		handler, db := newPortfolioHandler(t)

		testutil.NewTransaction().Buy(100, 10).Build(t, db)
		testutil.SaveSnapshot(t, db, nil, []model.DividendProjection{
			{Ticker: "PETR4", Day: 15, Amount: 0.5, Type: "Dividendo", Status: model.DividendConfirmed},
		})

		w := httptest.NewRecorder()
		handler.Charts(w, httptest.NewRequest(http.MethodGet, "/api/portfolio/charts", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		charts := testutil.DecodeJSON[model.ChartsResponse](t, w)
		if len(charts.DividendsByTicker) != 1 || charts.DividendsByTicker[0].Total != 50 {
			t.Errorf("Expected PETR4 dividends of 50, got %+v", charts.DividendsByTicker)
		}
		if len(charts.Exposure) != 1 || charts.Exposure[0].AssetType != model.AssetEquity {
			t.Errorf("Unexpected exposure: %+v", charts.Exposure)
		}
		if len(charts.TopPositions) != 1 {
			t.Errorf("Expected 1 top position, got %d", len(charts.TopPositions))
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := newPortfolioHandler(t)
		db.Close()

		w := httptest.NewRecorder()
		handler.Charts(w, httptest.NewRequest(http.MethodGet, "/api/portfolio/charts", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
