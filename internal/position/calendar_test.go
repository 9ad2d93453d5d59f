package position

import (
	"reflect"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

func projection(ticker string, d int, amount float64) model.DividendProjection {
	return model.DividendProjection{
		Ticker: ticker,
		Day:    d,
		Amount: amount,
		Type:   "Dividendo",
		Status: model.DividendForecast,
	}
}

func TestDividendDays(t *testing.T) {
	projections := []model.DividendProjection{
		projection("X", 15, 1),
		projection("Y", 3, 1),
		projection("Z", 15, 1),
	}

	got := DividendDays(projections)

	if want := []int{3, 15}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected days %v, got %v", want, got)
	}
}

func TestGroupByDay(t *testing.T) {
	projections := []model.DividendProjection{
		projection("X", 15, 1),
		projection("Y", 3, 1),
		projection("Z", 15, 2),
	}

	grouped := GroupByDay(projections)

	if len(grouped[15]) != 2 || grouped[15][0].Ticker != "X" || grouped[15][1].Ticker != "Z" {
		t.Errorf("Expected day 15 to hold X then Z, got %v", grouped[15])
	}
	if len(grouped[1]) != 0 {
		t.Errorf("Expected no projections on day 1, got %v", grouped[1])
	}
}

func TestPayoutsForDay(t *testing.T) {
	summaries := Aggregate([]model.Transaction{
		buy("X", 1, 100, 10, 0),
		buy("SOLD", 1, 10, 10, 0),
		sell("SOLD", 2, 10, 10, 0),
	}, nil)
	projections := []model.DividendProjection{
		projection("X", 15, 0.25),
		projection("SOLD", 15, 1.5),
		projection("X", 20, 0.5),
	}

	t.Run("multiplies amount by held quantity", func(t *testing.T) {
		payouts, total := PayoutsForDay(projections, summaries, 15)

		if len(payouts) != 2 {
			t.Fatalf("Expected 2 payouts, got %d", len(payouts))
		}
		if payouts[0].Ticker != "X" || payouts[0].Total != 25 || payouts[0].Quantity != 100 {
			t.Errorf("Expected X to pay 25 on 100 units, got %+v", payouts[0])
		}
		assertDecimal(t, "total", total, "25")
	})

	t.Run("unheld ticker pays zero", func(t *testing.T) {
		payouts, _ := PayoutsForDay(projections, summaries, 15)

		if payouts[1].Ticker != "SOLD" || payouts[1].Total != 0 || payouts[1].Quantity != 0 {
			t.Errorf("Expected SOLD to pay nothing, got %+v", payouts[1])
		}
	})

	t.Run("day without projections is empty", func(t *testing.T) {
		payouts, total := PayoutsForDay(projections, summaries, 1)

		if len(payouts) != 0 {
			t.Errorf("Expected no payouts, got %d", len(payouts))
		}
		assertDecimal(t, "total", total, "0")
	})
}
