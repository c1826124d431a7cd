package handlers

import (
	"net/http"
	"strconv"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/services/credits"
)

type CreditsHandler struct {
	service credits.Service
}

func NewCreditsHandler(service credits.Service) *CreditsHandler {
	return &CreditsHandler{service: service}
}

// HandleBalance handles GET /api/credits/balance
func (h *CreditsHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.Balance(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, balance)
}

// HandleTransactions handles GET /api/credits/transactions?limit=&offset=
func (h *CreditsHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	const op = "CreditsHandler.HandleTransactions"

	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, r, errors.InvalidInput(op, err, "limit must be an integer"))
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		respondError(w, r, errors.InvalidInput(op, err, "offset must be an integer"))
		return
	}

	page, err := h.service.Transactions(r.Context(), auth.FromContext(r.Context()), limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, page)
}

// queryInt returns 0 for a missing parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
