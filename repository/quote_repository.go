package repository

import (
	"context"

	"loan-quote/domain"
)

type QuoteRepository interface {
	Save(ctx context.Context, req domain.LoanRequest, quote domain.LoanQuote) error
	Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error)
}
