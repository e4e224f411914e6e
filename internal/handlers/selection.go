package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/resolver"
	"github.com/baldecash-team/baldecash-sub002/internal/selection"
	"github.com/baldecash-team/baldecash-sub002/internal/session"
	"github.com/baldecash-team/baldecash-sub002/internal/store"
)

type selectionResponse struct {
	Items     []catalog.Product   `json:"items"`
	Source    resolver.Provenance `json:"source"`
	Aggregate float64             `json:"aggregate,omitempty"`
}

type addSelectionRequest struct {
	ID string `json:"id"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	h.getSelection(w, r, store.KindCart)
}

func (h *Handlers) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.getSelection(w, r, store.KindWishlist)
}

func (h *Handlers) GetComparison(w http.ResponseWriter, r *http.Request) {
	h.getSelection(w, r, store.KindCompare)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.removeFromSelection(w, r, store.KindCart)
}

func (h *Handlers) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	h.removeFromSelection(w, r, store.KindWishlist)
}

func (h *Handlers) RemoveFromComparison(w http.ResponseWriter, r *http.Request) {
	h.removeFromSelection(w, r, store.KindCompare)
}

// AddToCart admits a product into the cart if the item cap and the aggregate
// payment ceiling both hold. A rejected add leaves the stored cart untouched
// and reports the violated limit.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.addToSelection(w, r, store.KindCart, h.guard.TryAdd)
}

// AddToWishlist saves a product for later. The wishlist is not financed, so
// no admission rules apply beyond product identity; re-adding a member is an
// idempotent no-op, same as the cart.
func (h *Handlers) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	h.addToSelection(w, r, store.KindWishlist, func(sel selection.Selection, _ []catalog.Product, product catalog.Product) (selection.Selection, error) {
		if sel.Contains(product.ID) {
			return sel, nil
		}
		return sel.With(product.ID), nil
	})
}

// AddToComparison admits a product into the comparison tray. Members must
// share a device type and the tray holds a bounded number of slots.
func (h *Handlers) AddToComparison(w http.ResponseWriter, r *http.Request) {
	h.addToSelection(w, r, store.KindCompare, h.guard.TryAddToComparison)
}

type admitFunc func(sel selection.Selection, members []catalog.Product, product catalog.Product) (selection.Selection, error)

func (h *Handlers) addToSelection(w http.ResponseWriter, r *http.Request, kind store.Kind, admit admitFunc) {
	ctx := r.Context()

	sess := session.FromContext(ctx)
	if sess == nil {
		h.writeError(ctx, w, http.StatusUnauthorized, "session required")
		return
	}

	var req addSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		h.writeError(ctx, w, http.StatusBadRequest, "product id is required")
		return
	}

	resolved := h.resolver.ResolveMany(ctx)
	product, ok := productByID(resolved.Products, id)
	if !ok {
		h.writeError(ctx, w, http.StatusNotFound, "product not found")
		return
	}

	sel := h.selections.Load(ctx, sess.ID, kind)
	members := productsByID(resolved.Products, sel.IDs)

	next, err := admit(sel, members, product)
	if err != nil {
		var rejection *selection.Rejection
		if errors.As(err, &rejection) {
			h.loggerFromContext(ctx).Info("selection add rejected",
				"kind", kind,
				"product_id", id,
				"reason", rejection.Reason,
			)
			h.writeJSON(ctx, w, http.StatusConflict, rejection)
			return
		}
		h.loggerFromContext(ctx).Error("failed to admit selection", "kind", kind, "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "failed to update selection")
		return
	}

	if err := h.selections.Save(ctx, sess.ID, kind, next); err != nil {
		h.loggerFromContext(ctx).Error("failed to persist selection", "kind", kind, "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "failed to persist selection")
		return
	}

	h.writeSelection(ctx, w, http.StatusOK, kind, next, resolved)
}

func (h *Handlers) getSelection(w http.ResponseWriter, r *http.Request, kind store.Kind) {
	ctx := r.Context()

	sess := session.FromContext(ctx)
	if sess == nil {
		h.writeError(ctx, w, http.StatusUnauthorized, "session required")
		return
	}

	resolved := h.resolver.ResolveMany(ctx)
	sel := h.selections.Load(ctx, sess.ID, kind)

	h.writeSelection(ctx, w, http.StatusOK, kind, sel, resolved)
}

func (h *Handlers) removeFromSelection(w http.ResponseWriter, r *http.Request, kind store.Kind) {
	ctx := r.Context()

	sess := session.FromContext(ctx)
	if sess == nil {
		h.writeError(ctx, w, http.StatusUnauthorized, "session required")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		h.writeError(ctx, w, http.StatusBadRequest, "product id is required")
		return
	}

	sel := h.selections.Load(ctx, sess.ID, kind).Without(id)
	if err := h.selections.Save(ctx, sess.ID, kind, sel); err != nil {
		h.loggerFromContext(ctx).Error("failed to persist selection", "kind", kind, "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "failed to persist selection")
		return
	}

	h.writeSelection(ctx, w, http.StatusOK, kind, sel, h.resolver.ResolveMany(ctx))
}

func (h *Handlers) writeSelection(ctx context.Context, w http.ResponseWriter, status int, kind store.Kind, sel selection.Selection, resolved *resolver.ListResolution) {
	members := productsByID(resolved.Products, sel.IDs)
	resp := selectionResponse{
		Items:  members,
		Source: resolved.Source,
	}
	if kind == store.KindCart {
		resp.Aggregate = h.guard.AggregatePayment(members)
	}
	h.writeJSON(ctx, w, status, resp)
}

func productByID(products []catalog.Product, id string) (catalog.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// productsByID preserves the selection's insertion order and silently drops
// identifiers that no longer resolve to a live product.
func productsByID(products []catalog.Product, ids []string) []catalog.Product {
	members := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := productByID(products, id); ok {
			members = append(members, p)
		}
	}
	return members
}
