package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
)

// Quote computes a financing quote for an arbitrary price. Term and down
// payment fall back to the configured defaults when omitted.
func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	price, err := strconv.ParseFloat(query.Get("price"), 64)
	if err != nil {
		h.writeError(ctx, w, http.StatusBadRequest, "price must be a number")
		return
	}

	term := h.config.DefaultTermMonths
	if raw := query.Get("term"); raw != "" {
		term, err = strconv.Atoi(raw)
		if err != nil {
			h.writeError(ctx, w, http.StatusBadRequest, "term must be an integer")
			return
		}
	}

	downPct := h.config.DefaultDownPaymentPercent
	if raw := query.Get("downPaymentPercent"); raw != "" {
		downPct, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(ctx, w, http.StatusBadRequest, "downPaymentPercent must be a number")
			return
		}
	}

	quote, err := h.pricer.ComputeInstallment(price, term, downPct)
	if err != nil {
		var vErr *pricing.ValidationError
		if errors.As(err, &vErr) {
			h.writeJSON(ctx, w, http.StatusUnprocessableEntity, map[string]string{
				"error": vErr.Error(),
				"field": vErr.Field,
			})
			return
		}
		h.loggerFromContext(ctx).Error("failed to compute quote", "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "failed to compute quote")
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, quote)
}
