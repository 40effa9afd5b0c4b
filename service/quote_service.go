package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
	"loan-quote/repository"
)

type QuoteService struct {
	calc   *Calculator
	repo   repository.QuoteRepository
	cache  repository.CacheRepository
	logger *slog.Logger
}

// NewQuoteService creates a QuoteService. A nil logger falls back to
// slog.Default().
func NewQuoteService(
	calc *Calculator,
	repo repository.QuoteRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *QuoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteService{calc: calc, repo: repo, cache: cache, logger: logger}
}

func (s *QuoteService) Calculator() *Calculator {
	return s.calc
}

// resolveProduct defaults an empty product name to SMALL_LOAN.
func resolveProduct(name string) (string, error) {
	if name == "" {
		return ProductSmallLoan, nil
	}
	if !knownProducts[name] {
		return "", &domain.InvalidInputError{
			Field:  "productName",
			Value:  name,
			Reason: "is not offered",
			Err:    domain.ErrUnknownProduct,
		}
	}
	return name, nil
}

// Quote prices the request. Cache and history failures are logged and do not
// fail the quote.
func (s *QuoteService) Quote(
	ctx context.Context,
	req domain.LoanRequest,
) (domain.LoanQuote, error) {
	product, err := resolveProduct(req.ProductName)
	if err != nil {
		return domain.LoanQuote{}, err
	}
	if err := s.calc.Validate(req.Amount, req.Period); err != nil {
		return domain.LoanQuote{}, err
	}

	key := quoteCacheKey(product, s.calc.ClampAmount(req.Amount), s.calc.ClampPeriod(req.Period))

	quote, hit := s.cached(ctx, key)
	if !hit {
		quote, err = s.calc.Quote(req.Amount, req.Period)
		if err != nil {
			return domain.LoanQuote{}, err
		}
		s.store(ctx, key, quote)
	}

	quote.ProductName = product
	quote.LoanPurpose = req.LoanPurpose

	req.Amount = s.calc.NormalizeAmount(req.Amount)
	if err := s.repo.Save(ctx, req, quote); err != nil {
		s.logger.WarnContext(ctx, "failed to save quote", "error", err)
	}

	s.logger.DebugContext(ctx, "quote computed",
		"amount", req.Amount.String(),
		"period", req.Period,
		"clamped_amount", quote.ClampedAmount.String(),
		"clamped_period", quote.ClampedPeriod,
		"monthly_payment", quote.MonthlyPayment.StringFixed(2),
		"cache_hit", hit,
	)
	return quote, nil
}

// QuoteRaw parses the raw modal inputs before quoting.
func (s *QuoteService) QuoteRaw(
	ctx context.Context,
	amount, period, productName, loanPurpose string,
) (domain.LoanQuote, error) {
	parsedAmount, err := ParseAmount(amount)
	if err != nil {
		return domain.LoanQuote{}, err
	}
	parsedPeriod, err := ParsePeriod(period)
	if err != nil {
		return domain.LoanQuote{}, err
	}
	return s.Quote(ctx, domain.LoanRequest{
		Amount:      parsedAmount,
		Period:      parsedPeriod,
		ProductName: productName,
		LoanPurpose: loanPurpose,
	})
}

func (s *QuoteService) History(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load quote history: %w", err)
	}
	return records, nil
}

func quoteCacheKey(product string, amount decimal.Decimal, period int) string {
	return "quote:" + product + ":" + amount.String() + ":" + strconv.Itoa(period)
}

func (s *QuoteService) cached(ctx context.Context, key string) (domain.LoanQuote, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.LoanQuote{}, false
	}
	var quote domain.LoanQuote
	if err := json.Unmarshal([]byte(raw), &quote); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable cached quote", "key", key, "error", err)
		return domain.LoanQuote{}, false
	}
	return quote, true
}

func (s *QuoteService) store(ctx context.Context, key string, quote domain.LoanQuote) {
	raw, err := json.Marshal(quote)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode quote for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache quote", "key", key, "error", err)
	}
}
