package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/filter"
	"github.com/baldecash-team/baldecash-sub002/internal/resolver"
)

type productListResponse struct {
	Items   []catalog.Product   `json:"items"`
	Total   int                 `json:"total"`
	Source  resolver.Provenance `json:"source"`
	Counts  filter.Counts       `json:"counts"`
	Filters string              `json:"filters"`
}

// ListProducts resolves the catalog, applies the query-string filter state,
// and returns the filtered page with live option counts. The canonical
// serialized filter state echoes back so clients can persist and share it.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.landingExists(r) {
		h.writeError(ctx, w, http.StatusNotFound, "unknown landing")
		return
	}

	query := r.URL.Query()
	state := filter.ParseQuery(query)
	sortKey := filter.ParseSortQuery(query)

	resolved := h.resolver.ResolveMany(ctx)
	items := h.filterEngine.Apply(resolved.Products, state, sortKey)
	counts := h.filterEngine.OptionCounts(resolved.Products, state)

	h.writeJSON(ctx, w, http.StatusOK, productListResponse{
		Items:   items,
		Total:   len(items),
		Source:  resolved.Source,
		Counts:  counts,
		Filters: filter.EncodeQuery(state, sortKey).Encode(),
	})
}

// GetProduct resolves one product plus its similar-product rail. Resolution
// is total: a degraded upstream shows up as a different source, never a 5xx.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.landingExists(r) {
		h.writeError(ctx, w, http.StatusNotFound, "unknown landing")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		h.writeError(ctx, w, http.StatusBadRequest, "product id is required")
		return
	}

	resolved := h.resolver.ResolveOne(ctx, id)
	h.writeJSON(ctx, w, http.StatusOK, resolved)
}

// landingExists checks the path slug against the landing this instance is
// configured to serve; resolution would otherwise silently answer for the
// wrong landing.
func (h *Handlers) landingExists(r *http.Request) bool {
	return mux.Vars(r)["slug"] == h.config.LandingSlug
}
