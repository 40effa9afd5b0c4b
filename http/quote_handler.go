package http

import (
	"net/http"
	"strconv"

	"loan-quote/domain"
	"loan-quote/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type QuoteHandler struct {
	service *service.QuoteService
}

func NewQuoteHandler(service *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// GetQuote takes the calculator modal's query string:
// ?amount=5000&period=60&productName=SMALL_LOAN&loanPurpose=DAILY_SETTLEMENTS
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.service.QuoteRaw(
		r.Context(),
		q.Get("amount"),
		q.Get("period"),
		q.Get("productName"),
		q.Get("loanPurpose"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *QuoteHandler) PostQuote(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Quote(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *QuoteHandler) RecentQuotes(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer", Field: "limit"})
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}
