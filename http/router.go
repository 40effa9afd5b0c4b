package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

func NewRouter(
	quotes *QuoteHandler,
	periods *PeriodHandler,
	limiter *RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/loan", func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter))

		r.Get("/quote", quotes.GetQuote)
		r.Post("/quote", quotes.PostQuote)
		r.Get("/quotes/recent", quotes.RecentQuotes)
		r.Post("/suggest-period", periods.SuggestPeriod)
	})

	return r
}
