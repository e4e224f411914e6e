package resolver

import (
	"context"
	"log/slog"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
)

// Provenance identifies which data source ultimately satisfied a resolution.
type Provenance string

const (
	SourceDetailAPI Provenance = "detail-api"
	SourceListAPI   Provenance = "list-api"
	SourceMock      Provenance = "mock"
)

const maxSimilarProducts = 4

// Resolution is the outcome of a single-product resolution. Source is
// observable state so the UI can flag degraded provenance.
type Resolution struct {
	Product catalog.Product   `json:"product"`
	Similar []catalog.Product `json:"similar"`
	Source  Provenance        `json:"source"`
}

// ListResolution is the outcome of a list resolution.
type ListResolution struct {
	Products []catalog.Product `json:"products"`
	Source   Provenance        `json:"source"`
}

type Resolver struct {
	client         *Client
	engine         *pricing.Engine
	defaultTerm    int
	defaultDownPct float64
	logger         *slog.Logger
}

func New(client *Client, engine *pricing.Engine, defaultTerm int, defaultDownPct float64, logger *slog.Logger) *Resolver {
	return &Resolver{
		client:         client,
		engine:         engine,
		defaultTerm:    defaultTerm,
		defaultDownPct: defaultDownPct,
		logger:         logger,
	}
}

// ResolveOne resolves a single product by id. Sources are attempted strictly
// in order (detail endpoint, list endpoint, bundled dataset); source failures
// are swallowed after a warn log. The bundled terminal level cannot fail, so
// the result is always a usable product.
func (r *Resolver) ResolveOne(ctx context.Context, id string) *Resolution {
	if detail, err := r.client.FetchDetail(ctx, id); err == nil {
		product := r.backfillQuota(catalog.FromDetail(*detail))
		return &Resolution{
			Product: product,
			Similar: r.similarTo(ctx, product),
			Source:  SourceDetailAPI,
		}
	} else {
		r.logger.Warn("detail source unavailable", "product_id", id, "error", err)
	}

	if items, err := r.client.FetchList(ctx); err == nil {
		products := r.normalizeList(items)
		if product, ok := findProduct(products, id); ok {
			return &Resolution{
				Product: product,
				Similar: similarFrom(products, product),
				Source:  SourceListAPI,
			}
		}
		r.logger.Warn("list source has no such product", "product_id", id)
	} else {
		r.logger.Warn("list source unavailable", "product_id", id, "error", err)
	}

	statics := r.normalizeProducts(catalog.StaticProducts())
	product, ok := findProduct(statics, id)
	if !ok {
		// Unknown id still resolves: the first bundled record stands in as demo data.
		product = statics[0]
	}
	return &Resolution{
		Product: product,
		Similar: similarFrom(statics, product),
		Source:  SourceMock,
	}
}

// ResolveMany resolves the full landing product list. The detail endpoint has
// no list mode, so the list source is the primary path here.
func (r *Resolver) ResolveMany(ctx context.Context) *ListResolution {
	if items, err := r.client.FetchList(ctx); err == nil && len(items) > 0 {
		return &ListResolution{
			Products: r.normalizeList(items),
			Source:   SourceListAPI,
		}
	} else if err != nil {
		r.logger.Warn("list source unavailable", "error", err)
	} else {
		r.logger.Warn("list source returned no products")
	}

	return &ListResolution{
		Products: r.normalizeProducts(catalog.StaticProducts()),
		Source:   SourceMock,
	}
}

// similarTo derives same-device-type products opportunistically from the list
// source. A failure here degrades similar products, never the resolution.
func (r *Resolver) similarTo(ctx context.Context, product catalog.Product) []catalog.Product {
	items, err := r.client.FetchList(ctx)
	if err != nil {
		r.logger.Warn("similar products degraded to bundled data", "product_id", product.ID, "error", err)
		return similarFrom(r.normalizeProducts(catalog.StaticProducts()), product)
	}
	return similarFrom(r.normalizeList(items), product)
}

func (r *Resolver) normalizeList(items []catalog.APIListItem) []catalog.Product {
	products := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		products = append(products, r.backfillQuota(catalog.FromListItem(item)))
	}
	return products
}

func (r *Resolver) normalizeProducts(products []catalog.Product) []catalog.Product {
	for i := range products {
		products[i] = r.backfillQuota(products[i])
	}
	return products
}

// backfillQuota ensures every product carries a representative per-period
// price. Upstream installment figures are trusted as-is when present.
func (r *Resolver) backfillQuota(product catalog.Product) catalog.Product {
	if product.MonthlyPrice > 0 {
		return product
	}
	quote, err := r.engine.ComputeInstallment(product.Price, r.defaultTerm, r.defaultDownPct)
	if err != nil {
		r.logger.Warn("failed to backfill quota", "product_id", product.ID, "error", err)
		return product
	}
	product.MonthlyPrice = quote.PeriodicPayment
	return product
}

func findProduct(products []catalog.Product, id string) (catalog.Product, bool) {
	for _, product := range products {
		if product.ID == id {
			return product, true
		}
	}
	return catalog.Product{}, false
}

func similarFrom(products []catalog.Product, reference catalog.Product) []catalog.Product {
	var similar []catalog.Product
	for _, product := range products {
		if product.ID == reference.ID || product.DeviceType != reference.DeviceType {
			continue
		}
		similar = append(similar, product)
		if len(similar) == maxSimilarProducts {
			break
		}
	}
	return similar
}
