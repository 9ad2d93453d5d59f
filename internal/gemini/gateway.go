package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

var quoteSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker":        {Type: genai.TypeString},
			"price":         {Type: genai.TypeNumber, Description: "Current price or last close"},
			"changePercent": {Type: genai.TypeNumber, Description: "Change of the day in percent"},
		},
		Required: []string{"ticker", "price", "changePercent"},
	},
}

var dividendSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker": {Type: genai.TypeString},
			"day":    {Type: genai.TypeInteger, Description: "Payment day of the month"},
			"amount": {Type: genai.TypeNumber, Description: "Amount per unit held"},
			"type":   {Type: genai.TypeString, Description: "Dividendo, JCP or Rendimento"},
			"status": {Type: genai.TypeString, Enum: []string{string(model.DividendForecast), string(model.DividendConfirmed)}},
		},
		Required: []string{"ticker", "day", "amount", "status"},
	},
}

var newsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"date":    {Type: genai.TypeString, Description: "YYYY-MM-DD"},
			"ticker":  {Type: genai.TypeString},
			"title":   {Type: genai.TypeString},
			"summary": {Type: genai.TypeString},
			"source":  {Type: genai.TypeString},
		},
		Required: []string{"ticker", "title"},
	},
}

// LiveQuotes asks for the current price and daily change of each ticker.
func (c *Client) LiveQuotes(ctx context.Context, tickers []string) ([]model.Quote, error) {
	if len(tickers) == 0 {
		return []model.Quote{}, nil
	}

	prompt := fmt.Sprintf(`Consulte o Google Search e informe o preço atual e a variação percentual de hoje dos seguintes ativos da B3 ou do mercado global: %s.
Se não houver cotação exata, use o último fechamento disponível.`, strings.Join(tickers, ", "))

	text, err := c.gen.Generate(ctx, prompt, groundedJSON(quoteSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live quotes: %w", err)
	}

	quotes, err := decodeArray[model.Quote](text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode live quotes: %w", err)
	}

	for i := range quotes {
		quotes[i].Source = SourceName
	}
	return quotes, nil
}

// DividendCalendar asks for the dividend payments expected during month.
func (c *Client) DividendCalendar(ctx context.Context, tickers []string, month time.Time) ([]model.DividendProjection, error) {
	if len(tickers) == 0 {
		return []model.DividendProjection{}, nil
	}

	prompt := fmt.Sprintf(`Identifique as datas de PAGAMENTO de proventos (dividendos, JCP, rendimentos) previstas ou confirmadas para %s dos ativos: %s.
Retorne apenas pagamentos que caem nesse mês, com o valor por cota ou ação.
Use status "confirmado" quando o pagamento já foi anunciado e "previsto" caso contrário.`,
		month.Format("01/2006"), strings.Join(tickers, ", "))

	text, err := c.gen.Generate(ctx, prompt, groundedJSON(dividendSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dividend calendar: %w", err)
	}

	projections, err := decodeArray[model.DividendProjection](text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dividend calendar: %w", err)
	}
	return projections, nil
}

// News asks for relevant headlines of the last 48 hours.
func (c *Client) News(ctx context.Context, tickers []string) ([]model.NewsItem, error) {
	if len(tickers) == 0 {
		return []model.NewsItem{}, nil
	}

	prompt := fmt.Sprintf(`Pesquise notícias financeiras reais e fatos relevantes das últimas 48 horas sobre: %s.
Para cada notícia informe data (YYYY-MM-DD), ticker, título, um resumo curto e a fonte.`, strings.Join(tickers, ", "))

	text, err := c.gen.Generate(ctx, prompt, groundedJSON(newsSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	items, err := decodeArray[model.NewsItem](text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode news: %w", err)
	}
	return items, nil
}

// TaxReport asks for the "Bens e Direitos" declaration text of the given positions.
func (c *Client) TaxReport(ctx context.Context, summaries []model.AssetSummary) (string, error) {
	if len(summaries) == 0 {
		return "", nil
	}

	assets := make([]string, 0, len(summaries))
	for _, s := range summaries {
		assets = append(assets, fmt.Sprintf("%s (%s): %s un, PM R$ %s",
			s.Ticker, s.AssetType, s.TotalQuantity.String(), s.AveragePrice.StringFixed(2)))
	}

	prompt := fmt.Sprintf(`Aja como contador brasileiro especialista em IRPF. Gere o texto exato da ficha "Bens e Direitos" para estes ativos: [%s].
Inclua o CNPJ quando souber, o código do grupo e da categoria e a discriminação no padrão da Receita Federal.`, strings.Join(assets, "; "))

	text, err := c.gen.Generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate tax report: %w", err)
	}
	return strings.TrimSpace(text), nil
}
