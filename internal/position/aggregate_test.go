package position

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func buy(ticker string, d int, quantity, price, fees float64) model.Transaction {
	return model.Transaction{
		ID:        ticker + "-buy",
		Date:      day(d),
		Ticker:    ticker,
		Type:      model.TransactionBuy,
		AssetType: model.AssetEquity,
		Quantity:  quantity,
		Price:     price,
		Fees:      fees,
	}
}

func sell(ticker string, d int, quantity, price, fees float64) model.Transaction {
	tx := buy(ticker, d, quantity, price, fees)
	tx.ID = ticker + "-sell"
	tx.Type = model.TransactionSell
	return tx
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("Expected %s %s, got %s", field, want, got)
	}
}

func mustFind(t *testing.T, summaries []model.AssetSummary, ticker string) model.AssetSummary {
	t.Helper()
	s, ok := Find(summaries, ticker)
	if !ok {
		t.Fatalf("Expected %s in summaries, got %v", ticker, Tickers(summaries))
	}
	return s
}

// TestAggregate_Scenarios walks the reference scenario of buys, a partial sale and a full sale.
//
// WHY: These are the cost-basis rules every other view depends on. Fees roll into the basis on
// buys, sells remove basis at average cost, and fully sold tickers disappear.
func TestAggregate_Scenarios(t *testing.T) {
	scenarioA := []model.Transaction{buy("X", 1, 10, 10.00, 1.00)}
	scenarioB := append(scenarioA, buy("X", 2, 10, 12.00, 0))
	scenarioC := append(scenarioB, sell("X", 3, 5, 99.00, 7.50))
	scenarioD := append(scenarioC, sell("X", 4, 15, 11.00, 0))

	t.Run("A: first buy rolls fees into cost basis", func(t *testing.T) {
		s := mustFind(t, Aggregate(scenarioA, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "10")
		assertDecimal(t, "totalInvested", s.TotalInvested, "101.00")
		assertDecimal(t, "averagePrice", s.AveragePrice, "10.10")
	})

	t.Run("B: second buy recomputes weighted average", func(t *testing.T) {
		s := mustFind(t, Aggregate(scenarioB, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "20")
		assertDecimal(t, "totalInvested", s.TotalInvested, "221.00")
		assertDecimal(t, "averagePrice", s.AveragePrice, "11.05")
	})

	t.Run("C: partial sell removes basis at average cost", func(t *testing.T) {
		s := mustFind(t, Aggregate(scenarioC, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "15")
		assertDecimal(t, "totalInvested", s.TotalInvested, "165.75")
		assertDecimal(t, "averagePrice", s.AveragePrice, "11.05")
	})

	t.Run("D: selling everything removes the ticker", func(t *testing.T) {
		summaries := Aggregate(scenarioD, nil)

		if len(summaries) != 0 {
			t.Errorf("Expected no summaries, got %v", Tickers(summaries))
		}
	})

	t.Run("E: lone sell without a position is ignored", func(t *testing.T) {
		summaries := Aggregate([]model.Transaction{sell("Y", 1, 3, 10, 0)}, nil)

		if len(summaries) != 0 {
			t.Errorf("Expected no summaries, got %v", Tickers(summaries))
		}
	})
}

func TestAggregate_Ordering(t *testing.T) {
	t.Run("sorts by date regardless of input order", func(t *testing.T) {
		// The sell is stored first but happened after the buy.
		txs := []model.Transaction{
			sell("X", 10, 4, 50, 0),
			buy("X", 1, 10, 10, 0),
		}

		s := mustFind(t, Aggregate(txs, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "6")
		assertDecimal(t, "totalInvested", s.TotalInvested, "60")
	})

	t.Run("sell dated before any buy is dropped", func(t *testing.T) {
		txs := []model.Transaction{
			buy("X", 5, 10, 10, 0),
			sell("X", 1, 4, 50, 0),
		}

		s := mustFind(t, Aggregate(txs, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "10")
	})

	t.Run("same-date transactions keep insertion order", func(t *testing.T) {
		// Insertion order: buy 10, sell 10, buy 5. Keeping it closes the position and
		// reopens it with a clean basis. Reordering the sell last would leave nothing.
		txs := []model.Transaction{
			buy("X", 1, 10, 10, 0),
			sell("X", 1, 10, 10, 0),
			buy("X", 1, 5, 20, 0),
		}

		s := mustFind(t, Aggregate(txs, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "5")
		assertDecimal(t, "totalInvested", s.TotalInvested, "100")
		assertDecimal(t, "averagePrice", s.AveragePrice, "20")
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		txs := []model.Transaction{
			buy("X", 10, 1, 1, 0),
			buy("X", 1, 1, 1, 0),
		}
		original := append([]model.Transaction(nil), txs...)

		Aggregate(txs, nil)

		if !reflect.DeepEqual(txs, original) {
			t.Error("Expected input transactions to be left untouched")
		}
	})
}

func TestAggregate_OverSell(t *testing.T) {
	t.Run("clamps quantity and invested together", func(t *testing.T) {
		txs := []model.Transaction{
			buy("X", 1, 10, 10, 5),
			sell("X", 2, 25, 10, 0),
		}

		if summaries := Aggregate(txs, nil); len(summaries) != 0 {
			t.Errorf("Expected over-sold ticker to be absent, got %v", Tickers(summaries))
		}
	})

	t.Run("rebuy after over-sell starts from a clean basis", func(t *testing.T) {
		txs := []model.Transaction{
			buy("X", 1, 10, 10, 0),
			sell("X", 2, 25, 10, 0),
			buy("X", 3, 2, 30, 1),
		}

		s := mustFind(t, Aggregate(txs, nil), "X")

		assertDecimal(t, "totalQuantity", s.TotalQuantity, "2")
		assertDecimal(t, "totalInvested", s.TotalInvested, "61")
		assertDecimal(t, "averagePrice", s.AveragePrice, "30.5")
	})
}

func TestAggregate_AssetType(t *testing.T) {
	first := buy("X", 1, 1, 10, 0)
	first.AssetType = model.AssetEquity
	second := buy("X", 2, 1, 10, 0)
	second.AssetType = model.AssetBDR

	s := mustFind(t, Aggregate([]model.Transaction{second, first}, nil), "X")

	if s.AssetType != model.AssetBDR {
		t.Errorf("Expected most recent asset type %s, got %s", model.AssetBDR, s.AssetType)
	}
}

func TestAggregate_Quotes(t *testing.T) {
	txs := []model.Transaction{
		buy("X", 1, 10, 10, 0),
		buy("Y", 1, 4, 25, 0),
		buy("Z", 1, 2, 50, 0),
	}
	quotes := map[string]model.Quote{
		"X": {Ticker: "X", Price: 12.5, ChangePercent: -1.25},
		"Z": {Ticker: "Z", Price: 0, ChangePercent: 3},
		"W": {Ticker: "W", Price: 99, ChangePercent: 1},
	}

	summaries := Aggregate(txs, quotes)

	t.Run("attaches live price and variation", func(t *testing.T) {
		s := mustFind(t, summaries, "X")

		assertDecimal(t, "currentPrice", s.CurrentPrice, "12.5")
		assertDecimal(t, "variation", s.Variation, "-1.25")
		if !s.HasQuote {
			t.Error("Expected HasQuote to be true")
		}
	})

	t.Run("missing quote defaults to average price and zero variation", func(t *testing.T) {
		s := mustFind(t, summaries, "Y")

		assertDecimal(t, "currentPrice", s.CurrentPrice, "25")
		assertDecimal(t, "variation", s.Variation, "0")
		if s.HasQuote {
			t.Error("Expected HasQuote to be false")
		}
	})

	t.Run("zero price is treated as unknown", func(t *testing.T) {
		s := mustFind(t, summaries, "Z")

		assertDecimal(t, "currentPrice", s.CurrentPrice, "50")
		assertDecimal(t, "variation", s.Variation, "0")
	})

	t.Run("quotes for unheld tickers are ignored", func(t *testing.T) {
		if _, ok := Find(summaries, "W"); ok {
			t.Error("Expected W to be absent")
		}
	})
}

// TestAggregate_Properties checks the invariants over randomly generated ledgers.
//
// WHY: The fold must hold its invariants for any input shape, not only the hand-picked
// scenarios: positive quantities only, no negative basis, no effect from sells on the
// average price, and identical output for identical input.
func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tickers := []string{"A", "B", "C"}

	for i := 0; i < 200; i++ {
		txs := make([]model.Transaction, 0, 20)
		for j := 0; j < 20; j++ {
			tx := buy(tickers[rng.Intn(len(tickers))], 1+rng.Intn(28), float64(1+rng.Intn(50)), float64(rng.Intn(10000))/100, float64(rng.Intn(500))/100)
			if rng.Intn(3) == 0 {
				tx.Type = model.TransactionSell
			}
			txs = append(txs, tx)
		}

		first := Aggregate(txs, nil)
		second := Aggregate(txs, nil)

		if !reflect.DeepEqual(first, second) {
			t.Fatalf("iteration %d: Expected identical results for identical input", i)
		}

		for _, s := range first {
			if !s.TotalQuantity.IsPositive() {
				t.Fatalf("iteration %d: %s emitted with quantity %s", i, s.Ticker, s.TotalQuantity)
			}
			if s.TotalInvested.IsNegative() {
				t.Fatalf("iteration %d: %s has negative invested %s", i, s.Ticker, s.TotalInvested)
			}
		}
	}
}

func TestAggregate_WeightedAverageLaw(t *testing.T) {
	txs := []model.Transaction{
		buy("X", 1, 3, 10.01, 0.33),
		buy("X", 2, 7, 9.87, 1.1),
		buy("X", 3, 11, 10.5, 0),
	}

	s := mustFind(t, Aggregate(txs, nil), "X")

	if !s.AveragePrice.Equal(s.TotalInvested.Div(s.TotalQuantity)) {
		t.Errorf("Expected averagePrice %s to equal invested/quantity %s", s.AveragePrice, s.TotalInvested.Div(s.TotalQuantity))
	}
}

func TestAggregate_SellKeepsAveragePrice(t *testing.T) {
	base := []model.Transaction{
		buy("X", 1, 3, 10.01, 0.33),
		buy("X", 2, 7, 9.87, 1.1),
	}
	before := mustFind(t, Aggregate(base, nil), "X")
	after := mustFind(t, Aggregate(append(base, sell("X", 3, 4, 15, 2)), nil), "X")

	if !before.AveragePrice.Equal(after.AveragePrice) {
		t.Errorf("Expected averagePrice %s to survive the sell, got %s", before.AveragePrice, after.AveragePrice)
	}
	assertDecimal(t, "totalQuantity", after.TotalQuantity, "6")
}

func TestAggregate_EmptyInput(t *testing.T) {
	summaries := Aggregate(nil, nil)

	if summaries == nil {
		t.Error("Expected non-nil empty slice")
	}
	if len(summaries) != 0 {
		t.Errorf("Expected no summaries, got %d", len(summaries))
	}
}
