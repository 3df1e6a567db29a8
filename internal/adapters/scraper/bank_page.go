package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bankrates/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	defaultCurrencyCode   = "USD"
	defaultRequestTimeout = 5 * time.Second
	maxBodyBytes          = 2 << 20
)

const (
	OutcomeOK          = "ok"
	OutcomeRequestErr  = "request_error"
	OutcomeBadStatus   = "bad_status"
	OutcomeRowNotFound = "row_not_found"
	OutcomeBadValue    = "bad_value"
)

var (
	errBadStatus   = errors.New("unexpected status code")
	errRowNotFound = errors.New("currency row not found")
	errBadValue    = errors.New("malformed rate value")
)

// FetchRecorder receives the outcome of every page fetch.
type FetchRecorder interface {
	RecordFetch(bank, outcome string)
}

type Options struct {
	CurrencyCode   string
	RequestTimeout time.Duration
	UserAgent      string
}

// BankPageClient reads the published sell/buy pair for one currency from a bank's
// rates page. The page must contain a row like
//
//	<tr data-currency-code="USD"><td class="sell">12650</td><td class="buy">12600</td></tr>
type BankPageClient struct {
	http     *http.Client
	opts     Options
	recorder FetchRecorder
}

// Fetch returns the quote published at endpoint. Any failure (transport, status,
// markup or value) is logged and reported as ok == false.
func (c *BankPageClient) Fetch(ctx context.Context, endpoint domain.BankEndpoint) (domain.Quote, bool) {
	quote, err := c.fetch(ctx, endpoint)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"bank": endpoint.Bank, "url": endpoint.URL}).
			Warn("Bank rate is unavailable this time")
		c.record(endpoint.Bank, outcomeOf(err))
		return domain.Quote{}, false
	}
	c.record(endpoint.Bank, OutcomeOK)
	return quote, true
}

func (c *BankPageClient) fetch(ctx context.Context, endpoint domain.BankEndpoint) (domain.Quote, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.URL, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Quote{}, fmt.Errorf("%w %d: %s", errBadStatus, resp.StatusCode, resp.Status)
	}

	return parseQuote(io.LimitReader(resp.Body, maxBodyBytes), c.opts.CurrencyCode)
}

func parseQuote(r io.Reader, code string) (domain.Quote, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to parse page: %w", err)
	}

	row := doc.Find(fmt.Sprintf(`tr[data-currency-code=%q]`, code)).First()
	if row.Length() == 0 {
		return domain.Quote{}, fmt.Errorf("%w: %s", errRowNotFound, code)
	}

	sell, err := parseAmount(row.Find("td.sell").First().Text())
	if err != nil {
		return domain.Quote{}, fmt.Errorf("sell: %w", err)
	}
	buy, err := parseAmount(row.Find("td.buy").First().Text())
	if err != nil {
		return domain.Quote{}, fmt.Errorf("buy: %w", err)
	}

	quote := domain.Quote{Sell: sell, Buy: buy}
	if !quote.Valid() {
		return domain.Quote{}, fmt.Errorf("%w: sell %s, buy %s must be positive", errBadValue, sell, buy)
	}
	return quote, nil
}

// pages group thousands with regular, no-break or thin spaces
var groupSeparators = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "\u2009", "")

func parseAmount(text string) (decimal.Decimal, error) {
	s := groupSeparators.Replace(strings.TrimSpace(text))
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty cell", errBadValue)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errBadValue, text)
	}
	return v, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, errBadStatus):
		return OutcomeBadStatus
	case errors.Is(err, errRowNotFound):
		return OutcomeRowNotFound
	case errors.Is(err, errBadValue):
		return OutcomeBadValue
	default:
		return OutcomeRequestErr
	}
}

func (c *BankPageClient) record(bank, outcome string) {
	if c.recorder != nil {
		c.recorder.RecordFetch(bank, outcome)
	}
}

func NewBankPageClient(httpClient *http.Client, opts Options, recorder FetchRecorder) *BankPageClient {
	if opts.CurrencyCode == "" {
		opts.CurrencyCode = defaultCurrencyCode
	}
	opts.CurrencyCode = strings.ToUpper(opts.CurrencyCode)
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &BankPageClient{http: httpClient, opts: opts, recorder: recorder}
}
