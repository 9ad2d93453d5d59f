package position

import (
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

func TestDividendsByTicker(t *testing.T) {
	summaries := Aggregate([]model.Transaction{
		buy("X", 1, 100, 10, 0),
		buy("Y", 1, 10, 10, 0),
		buy("NONE", 1, 10, 10, 0),
	}, nil)
	projections := []model.DividendProjection{
		projection("Y", 5, 3),
		projection("X", 15, 0.1),
		projection("X", 28, 0.1),
		projection("GONE", 28, 5),
	}

	totals := DividendsByTicker(projections, summaries)

	if len(totals) != 2 {
		t.Fatalf("Expected 2 tickers with dividends, got %d", len(totals))
	}
	if totals[0].Ticker != "Y" {
		t.Errorf("Expected Y first (30), got %s", totals[0].Ticker)
	}
	assertDecimal(t, "Y total", totals[0].Total, "30")
	assertDecimal(t, "X total", totals[1].Total, "20")
}

func TestExposureByAssetType(t *testing.T) {
	fund := buy("HGLG11", 1, 10, 100, 0)
	fund.AssetType = model.AssetRealEstateFund

	summaries := Aggregate([]model.Transaction{
		buy("X", 1, 10, 10, 0),
		buy("Y", 1, 10, 15, 0),
		fund,
	}, nil)

	exposure := ExposureByAssetType(summaries)

	if len(exposure) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(exposure))
	}
	if exposure[0].AssetType != model.AssetRealEstateFund {
		t.Errorf("Expected real estate fund first, got %s", exposure[0].AssetType)
	}
	assertDecimal(t, "equity exposure", exposure[1].Total, "250")
}

func TestTopPositions(t *testing.T) {
	summaries := Aggregate([]model.Transaction{
		buy("A", 1, 1, 10, 0),
		buy("B", 1, 1, 60, 0),
		buy("C", 1, 1, 30, 0),
		buy("D", 1, 1, 30, 0),
		buy("E", 1, 1, 50, 0),
		buy("F", 1, 1, 20, 0),
	}, nil)

	top := TopPositions(summaries, DefaultTopPositions)

	if len(top) != 5 {
		t.Fatalf("Expected 5 positions, got %d", len(top))
	}
	want := []string{"B", "E", "C", "D", "F"}
	for i, ticker := range want {
		if top[i].Ticker != ticker {
			t.Errorf("position %d: expected %s, got %s", i, ticker, top[i].Ticker)
		}
	}

	if len(TopPositions(summaries[:2], DefaultTopPositions)) != 2 {
		t.Error("Expected all positions when fewer than n are held")
	}
}
