package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
	"github.com/ndewijer/InvestPro-Backend/internal/testutil"
)

func TestGroupNews(t *testing.T) {
	t.Run("groups by date newest first with undated last", func(t *testing.T) {
		groups := service.GroupNews([]model.NewsItem{
			{Date: "2026-03-01", Title: "a"},
			{Title: "b"},
			{Date: "2026-03-05", Title: "c"},
			{Date: "2026-03-01", Title: "d"},
		})

		if len(groups) != 3 {
			t.Fatalf("Expected 3 groups, got %d", len(groups))
		}
		if groups[0].Date != "2026-03-05" || groups[1].Date != "2026-03-01" || groups[2].Date != service.UndatedNewsGroup {
			t.Errorf("Unexpected order: %v", groups)
		}
		if len(groups[1].Items) != 2 || groups[1].Items[0].Title != "a" || groups[1].Items[1].Title != "d" {
			t.Errorf("Expected item order kept within a group, got %+v", groups[1].Items)
		}
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		groups := service.GroupNews(nil)
		if groups == nil || len(groups) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", groups)
		}
	})
}

func TestNewsService_GetNews(t *testing.T) {
	t.Run("requests news for held tickers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gateway := testutil.NewMockGateway()
		gateway.NewsItems = []model.NewsItem{
			{Date: "2026-03-02", Ticker: "petr4", Title: "  Petrobras anuncia dividendos  "},
			{Date: "2026-03-02", Ticker: "PETR4", Title: "   "},
		}
		svc := testutil.NewTestNewsService(t, db, gateway)
		testutil.NewTransaction().Build(t, db)

		groups, err := svc.GetNews(context.Background())
		if err != nil {
			t.Fatalf("GetNews() returned unexpected error: %v", err)
		}
		if len(gateway.LastTickers) != 1 || gateway.LastTickers[0] != "PETR4" {
			t.Errorf("Expected PETR4 to be requested, got %v", gateway.LastTickers)
		}
		if len(groups) != 1 || len(groups[0].Items) != 1 {
			t.Fatalf("Expected one sanitised item, got %+v", groups)
		}
		if item := groups[0].Items[0]; item.Ticker != "PETR4" || item.Title != "Petrobras anuncia dividendos" {
			t.Errorf("Expected normalised item, got %+v", item)
		}
	})

	t.Run("gateway error yields no groups", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gateway := testutil.NewMockGateway()
		gateway.NewsErr = errors.New("boom")
		svc := testutil.NewTestNewsService(t, db, gateway)
		testutil.NewTransaction().Build(t, db)

		groups, err := svc.GetNews(context.Background())
		if err != nil {
			t.Fatalf("GetNews() returned unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("Expected no groups, got %v", groups)
		}
	})
}
