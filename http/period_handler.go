package http

import (
	"net/http"

	"loan-quote/domain"
	"loan-quote/service"
)

type PeriodHandler struct {
	advisor *service.PeriodAdvisor
}

func NewPeriodHandler(advisor *service.PeriodAdvisor) *PeriodHandler {
	return &PeriodHandler{advisor: advisor}
}

func (h *PeriodHandler) SuggestPeriod(w http.ResponseWriter, r *http.Request) {
	var input domain.PeriodSuggestionInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.advisor.Suggest(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
