package repository

import (
	"context"
	"sync"
	"time"

	"loan-quote/domain"
)

// QuoteRepositoryMemory keeps the last capacity quotes in a ring buffer.
type QuoteRepositoryMemory struct {
	mu      sync.Mutex
	records []domain.QuoteRecord
	next    int
	full    bool
	now     func() time.Time
}

// NewQuoteRepositoryMemory creates a new in-memory quote history. A capacity
// below one is raised to one.
func NewQuoteRepositoryMemory(capacity int) *QuoteRepositoryMemory {
	if capacity < 1 {
		capacity = 1
	}
	return &QuoteRepositoryMemory{
		records: make([]domain.QuoteRecord, capacity),
		now:     time.Now,
	}
}

// Save stores the quote, overwriting the oldest record once full.
func (r *QuoteRepositoryMemory) Save(
	_ context.Context,
	req domain.LoanRequest,
	quote domain.LoanQuote,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[r.next] = domain.QuoteRecord{
		Request:   req,
		Quote:     quote,
		CreatedAt: r.now(),
	}
	r.next = (r.next + 1) % len(r.records)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent returns up to limit records, newest first. A limit of zero or less
// returns everything stored.
func (r *QuoteRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.QuoteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.full {
		size = len(r.records)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]domain.QuoteRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.records)) % len(r.records)
		out = append(out, r.records[idx])
	}
	return out, nil
}
