package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	fin "github.com/nischitpatel/stock-price-analysis-system/internal/services/fundamentals"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/cache"
	xhttp "github.com/nischitpatel/stock-price-analysis-system/pkg/http"
	applogger "github.com/nischitpatel/stock-price-analysis-system/pkg/logger"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/util"
)

const (
	timeseriesPath   = "/ws/fundamentals-timeseries/v1/finance/timeseries/"
	chartPath        = "/v8/finance/chart/"
	quotePath        = "/v7/finance/quote"
	quoteSummaryPath = "/v10/finance/quoteSummary/"

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// TTLConfig sets response cache lifetimes per endpoint.
type TTLConfig struct {
	Fundamentals time.Duration
	Prices       time.Duration
	Summary      time.Duration
	Quote        time.Duration
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	TTL       TTLConfig
}

// Client implements repository.MarketData against the Yahoo JSON API.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	cache   cache.Service
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

// New creates a market-data client. cache, metrics and logger may be nil.
func New(cfg Config, cacheSvc cache.Service, metrics domrepo.Metrics, logger *applogger.Logger) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithDefaultHeaders(map[string]string{
				"User-Agent": cfg.UserAgent,
				"Accept":     "application/json",
			}),
		),
		cache:   cacheSvc,
		metrics: metrics,
		logger:  logger,
	}
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// FundamentalsTimeSeries fetches one statement module as dated vendor rows.
// Rows are keyed by prefixed concept names ("annualTotalAssets") and carry
// "date" and "periodType" so the resolver can classify them.
func (c *Client) FundamentalsTimeSeries(ctx context.Context, symbol string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
	var concepts []string
	switch q.Module {
	case domrepo.ModuleBalanceSheet:
		concepts = fin.BalanceSheetConcepts()
	case domrepo.ModuleFinancials:
		concepts = fin.IncomeStatementConcepts()
	default:
		return nil, fmt.Errorf("yahoo: unknown fundamentals module %q", q.Module)
	}

	prefix := q.Type.Prefix()
	types := make([]string, len(concepts))
	for i, name := range concepts {
		types[i] = prefix + name
	}

	key := cache.GenerateKeyWithParams("yahoo:timeseries", symbol, string(q.Type), q.Module, q.PeriodStart, q.PeriodEnd)
	var rows []models.VendorRow
	if c.cacheGet(ctx, key, &rows) {
		return rows, nil
	}

	p1, p2, err := periodBounds(q.PeriodStart, q.PeriodEnd)
	if err != nil {
		return nil, err
	}

	var res tsResponse
	start := time.Now()
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + timeseriesPath + symbol,
		QueryParams: map[string][]string{
			"symbol":        {symbol},
			"type":          {strings.Join(types, ",")},
			"period1":       {strconv.FormatInt(p1, 10)},
			"period2":       {strconv.FormatInt(p2, 10)},
			"merge":         {"false"},
			"padTimeSeries": {"false"},
		},
	}, &res)
	c.observe("timeseries", symbol, start, err)
	if err != nil {
		return nil, fmt.Errorf("yahoo timeseries %s: %w", symbol, err)
	}
	if res.Timeseries.Error != nil {
		return nil, fmt.Errorf("yahoo timeseries %s: %w", symbol, res.Timeseries.Error)
	}

	rows = pivotTimeseries(res.Timeseries.Result)
	c.cacheSet(ctx, key, rows, c.cfg.TTL.Fundamentals)
	return rows, nil
}

type tsResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *apiError                    `json:"error"`
	} `json:"timeseries"`
}

type tsMeta struct {
	Type []string `json:"type"`
}

type tsItem struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	ReportedValue *struct {
		Raw *float64 `json:"raw"`
	} `json:"reportedValue"`
}

// pivotTimeseries turns per-concept series into per-date rows, ascending.
func pivotTimeseries(results []map[string]json.RawMessage) []models.VendorRow {
	byDate := make(map[string]models.VendorRow)
	for _, result := range results {
		rawMeta, ok := result["meta"]
		if !ok {
			continue
		}
		var meta tsMeta
		if err := json.Unmarshal(rawMeta, &meta); err != nil || len(meta.Type) == 0 {
			continue
		}
		typeKey := meta.Type[0]

		rawSeries, ok := result[typeKey]
		if !ok {
			continue
		}
		var items []*tsItem
		if err := json.Unmarshal(rawSeries, &items); err != nil {
			continue
		}
		for _, item := range items {
			if item == nil || item.AsOfDate == "" || item.ReportedValue == nil || item.ReportedValue.Raw == nil {
				continue
			}
			row, ok := byDate[item.AsOfDate]
			if !ok {
				row = models.VendorRow{
					"date":       item.AsOfDate,
					"periodType": item.PeriodType,
				}
				byDate[item.AsOfDate] = row
			}
			row[typeKey] = *item.ReportedValue.Raw
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rows := make([]models.VendorRow, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, byDate[d])
	}
	return rows
}

// PriceSeries fetches daily bars over a date range.
func (c *Client) PriceSeries(ctx context.Context, symbol string, q domrepo.PriceQuery) ([]models.PriceBar, error) {
	interval := q.Interval
	if interval == "" {
		interval = "1d"
	}

	key := cache.GenerateKeyWithParams("yahoo:chart", symbol, interval, q.PeriodStart, q.PeriodEnd)
	var bars []models.PriceBar
	if c.cacheGet(ctx, key, &bars) {
		return bars, nil
	}

	p1, p2, err := periodBounds(q.PeriodStart, q.PeriodEnd)
	if err != nil {
		return nil, err
	}

	var res chartResponse
	start := time.Now()
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + chartPath + symbol,
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(p1, 10)},
			"period2":  {strconv.FormatInt(p2, 10)},
			"interval": {interval},
			"events":   {"div,split"},
		},
	}, &res)
	c.observe("chart", symbol, start, err)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if res.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, res.Chart.Error)
	}
	if len(res.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: empty result", symbol)
	}

	bars = buildBars(res.Chart.Result[0])
	c.cacheSet(ctx, key, bars, c.cfg.TTL.Prices)
	return bars, nil
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

func buildBars(r chartResult) []models.PriceBar {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	q := r.Indicators.Quote[0]
	bars := make([]models.PriceBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		bar := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			bar.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			bar.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			bar.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			bar.Volume = *q.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars
}

// Quote fetches the live quote snapshot for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	key := cache.GenerateKeyWithParams("yahoo:quote", symbol)
	var quote models.Quote
	if c.cacheGet(ctx, key, &quote) {
		return &quote, nil
	}

	var res quoteResponse
	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + quotePath,
		QueryParams: map[string][]string{
			"symbols": {symbol},
		},
	}, &res)
	c.observe("quote", symbol, start, err)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if res.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, res.QuoteResponse.Error)
	}
	if len(res.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote %s: not found", symbol)
	}

	r := res.QuoteResponse.Result[0]
	quote = models.Quote{
		Symbol:             r.Symbol,
		ShortName:          r.ShortName,
		RegularMarketPrice: r.RegularMarketPrice,
		Currency:           r.Currency,
		MarketState:        r.MarketState,
		Timestamp:          r.RegularMarketTime,
	}
	if c.metrics != nil && quote.RegularMarketPrice != nil {
		c.metrics.RecordLastPrice(symbol, *quote.RegularMarketPrice)
	}
	c.cacheSet(ctx, key, &quote, c.cfg.TTL.Quote)
	return &quote, nil
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			ShortName          string   `json:"shortName"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
			Currency           string   `json:"currency"`
			MarketState        string   `json:"marketState"`
			RegularMarketTime  int64    `json:"regularMarketTime"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteSummary fetches the requested summary modules. Wrapped vendor numbers
// ({"raw": n, "fmt": ...}) are flattened to plain numbers.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules []string) (models.QuoteSummary, error) {
	moduleKey := cache.HashKey(strings.Join(modules, ","))
	key := cache.GenerateKeyWithParams("yahoo:summary", symbol, moduleKey)
	var qs models.QuoteSummary
	if c.cacheGet(ctx, key, &qs) {
		return qs, nil
	}

	var res summaryResponse
	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + quoteSummaryPath + symbol,
		QueryParams: map[string][]string{
			"modules": {strings.Join(modules, ",")},
		},
	}, &res)
	c.observe("quoteSummary", symbol, start, err)
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, err)
	}
	if res.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, res.QuoteSummary.Error)
	}
	if len(res.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary %s: not found", symbol)
	}

	qs = make(models.QuoteSummary, len(res.QuoteSummary.Result[0]))
	for name, module := range res.QuoteSummary.Result[0] {
		row := make(models.VendorRow, len(module))
		for k, v := range module {
			row[k] = flattenRaw(v)
		}
		qs[name] = row
	}
	c.cacheSet(ctx, key, qs, c.cfg.TTL.Summary)
	return qs, nil
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []map[string]map[string]any `json:"result"`
		Error  *apiError                   `json:"error"`
	} `json:"quoteSummary"`
}

// flattenRaw unwraps {"raw": n} value objects anywhere in a vendor payload.
func flattenRaw(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if raw, ok := t["raw"]; ok {
			if _, isNum := raw.(float64); isNum {
				return raw
			}
		}
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = flattenRaw(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = flattenRaw(inner)
		}
		return out
	default:
		return v
	}
}

func periodBounds(start, end string) (int64, int64, error) {
	t1, ok := util.ParseYMD(start)
	if !ok {
		return 0, 0, fmt.Errorf("yahoo: bad period start %q", start)
	}
	t2, ok := util.ParseYMD(end)
	if !ok {
		return 0, 0, fmt.Errorf("yahoo: bad period end %q", end)
	}
	return t1.Unix(), t2.Unix(), nil
}

func (c *Client) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}
	err := c.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) && c.logger != nil {
		c.logger.Warn("cache get failed", applogger.String("key", key), applogger.Error(err))
	}
	return false
}

func (c *Client) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.cache == nil || ttl <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, value, ttl); err != nil && c.logger != nil {
		c.logger.Warn("cache set failed", applogger.String("key", key), applogger.Error(err))
	}
}

func (c *Client) observe(endpoint, symbol string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordProviderQuery(endpoint, symbol)
	c.metrics.RecordLatency("yahoo_"+endpoint, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordError("yahoo_" + endpoint)
	}
}
