package market_test

import (
	"math"
	"slices"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/market"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

func TestSanitizeQuotes_NonPositivePriceDoesNotShadowLaterEntry(t *testing.T) {
	quotes := market.SanitizeQuotes([]model.Quote{
		{Ticker: "PETR4", Price: 0},
		{Ticker: "PETR4", Price: 37.5},
	})

	if len(quotes) != 1 || quotes[0].Price != 37.5 {
		t.Errorf("Expected PETR4 at 37.5, got %+v", quotes)
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"petr4", "PETR4"},
		{"  mxrf11\t", "MXRF11"},
		{"BBAS3", "BBAS3"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := market.NormalizeTicker(tt.in); got != tt.want {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeQuotes(t *testing.T) {
	quotes := market.SanitizeQuotes([]model.Quote{
		{Ticker: " petr4 ", Price: 38, ChangePercent: math.Inf(1)},
		{Ticker: "PETR4", Price: 40},
		{Ticker: "", Price: 10},
		{Ticker: "VALE3", Price: math.NaN()},
		{Ticker: "BBAS3", Price: 0},
		{Ticker: "ITSA4", Price: -1},
		{Ticker: "ITUB4", Price: 30, ChangePercent: -1.5},
	})

	if got := tickersOf(quotes); !slices.Equal(got, []string{"PETR4", "ITUB4"}) {
		t.Fatalf("Unexpected tickers %v", got)
	}
	if quotes[0].Price != 38 || quotes[0].ChangePercent != 0 {
		t.Errorf("Expected first PETR4 quote with zeroed change, got %+v", quotes[0])
	}
	if quotes[1].ChangePercent != -1.5 {
		t.Errorf("Expected ITUB4 change kept, got %+v", quotes[1])
	}
}

func TestSanitizeProjections(t *testing.T) {
	projections := market.SanitizeProjections([]model.DividendProjection{
		{Ticker: "mxrf11", Day: 15, Amount: 0.1, Type: " Rendimento ", Status: " Confirmado "},
		{Ticker: "HGLG11", Day: 31, Amount: 1.1, Status: "estimado"},
		{Ticker: "PETR4", Day: 0, Amount: 1},
		{Ticker: "PETR4", Day: 32, Amount: 1},
		{Ticker: "VALE3", Day: 10, Amount: -1},
		{Ticker: "ITSA4", Day: 10, Amount: math.NaN()},
		{Ticker: " ", Day: 10, Amount: 1},
		{Ticker: "BBAS3", Day: 1, Amount: 0},
	})

	if len(projections) != 3 {
		t.Fatalf("Expected 3 projections, got %+v", projections)
	}

	first := projections[0]
	if first.Ticker != "MXRF11" || first.Status != model.DividendConfirmed || first.Type != "Rendimento" {
		t.Errorf("Unexpected first projection %+v", first)
	}
	if projections[1].Status != model.DividendForecast {
		t.Errorf("Expected unknown status read as forecast, got %q", projections[1].Status)
	}
	if projections[2].Ticker != "BBAS3" || projections[2].Amount != 0 {
		t.Errorf("Expected zero amount kept, got %+v", projections[2])
	}
}

func TestSanitizeNews(t *testing.T) {
	news := market.SanitizeNews([]model.NewsItem{
		{Ticker: "petr4", Date: " 2026-05-02 ", Title: " Alta ", Summary: " resumo ", Source: " Valor "},
		{Ticker: "VALE3", Title: ""},
	})

	want := model.NewsItem{Ticker: "PETR4", Date: "2026-05-02", Title: "Alta", Summary: "resumo", Source: "Valor"}
	if len(news) != 1 || news[0] != want {
		t.Errorf("Expected %+v, got %+v", want, news)
	}
}

func TestMissingTickers(t *testing.T) {
	quotes := []model.Quote{{Ticker: "VALE3"}, {Ticker: "ITUB4"}}

	if got := market.MissingTickers([]string{"PETR4", "VALE3", "MXRF11", "ITUB4"}, quotes); !slices.Equal(got, []string{"PETR4", "MXRF11"}) {
		t.Errorf("Unexpected missing tickers %v", got)
	}
	if got := market.MissingTickers([]string{"VALE3"}, quotes); len(got) != 0 {
		t.Errorf("Expected none missing, got %v", got)
	}
}
