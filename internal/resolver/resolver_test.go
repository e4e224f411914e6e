package resolver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestResolver(t *testing.T, handler http.Handler) *Resolver {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "students", 200)
	return New(client, pricing.NewEngine(), 24, 0, testLogger())
}

func detailPayload(id string) catalog.APIDetailProduct {
	return catalog.APIDetailProduct{
		ID:         id,
		Slug:       "aurora-book-14",
		Name:       "Aurora Book 14",
		DeviceType: "laptop",
		Pricing: catalog.APIPricing{
			ListPrice:  2099,
			FinalPrice: 1899,
			Hook:       catalog.APIPricingHook{MonthlyPrice: 92},
		},
		Specs: []catalog.APISpecEntry{{Code: "ram_gb", Value: "16"}},
	}
}

func listPayload() map[string]any {
	return map[string]any{
		"items": []catalog.APIListItem{
			{ID: "p-1", Name: "Aurora Book 14", DeviceType: "laptop", Price: 1899, MonthlyPrice: 92},
			{ID: "p-2", Name: "Vertex Gamer 15", DeviceType: "laptop", Price: 5299},
			{ID: "p-3", Name: "Slate Pad 11", DeviceType: "tablet", Price: 1349, MonthlyPrice: 66},
		},
	}
}

func TestResolveOnePrefersDetailSource(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/landing/students/products/p-1":
			_ = json.NewEncoder(w).Encode(detailPayload("p-1"))
		case "/landing/students/products":
			_ = json.NewEncoder(w).Encode(listPayload())
		default:
			http.NotFound(w, req)
		}
	}))

	resolution := r.ResolveOne(context.Background(), "p-1")

	if resolution.Source != SourceDetailAPI {
		t.Fatalf("Source = %q, want %q", resolution.Source, SourceDetailAPI)
	}
	if resolution.Product.ID != "p-1" || resolution.Product.Price != 1899 {
		t.Fatalf("unexpected product: %+v", resolution.Product)
	}
	if len(resolution.Similar) != 1 || resolution.Similar[0].ID != "p-2" {
		t.Fatalf("expected one similar laptop (p-2), got %+v", resolution.Similar)
	}
}

func TestResolveOneFallsBackToListSource(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/landing/students/products" {
			_ = json.NewEncoder(w).Encode(listPayload())
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	resolution := r.ResolveOne(context.Background(), "p-3")

	if resolution.Source != SourceListAPI {
		t.Fatalf("Source = %q, want %q", resolution.Source, SourceListAPI)
	}
	if resolution.Product.ID != "p-3" {
		t.Fatalf("unexpected product: %+v", resolution.Product)
	}
	for _, similar := range resolution.Similar {
		if similar.DeviceType != resolution.Product.DeviceType {
			t.Fatalf("similar product %q has device type %q", similar.ID, similar.DeviceType)
		}
		if similar.ID == resolution.Product.ID {
			t.Fatal("similar products must exclude the product itself")
		}
	}
}

func TestResolveOneTerminalFallbackCannotFail(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	resolution := r.ResolveOne(context.Background(), "no-such-id")

	if resolution == nil || resolution.Product.ID == "" {
		t.Fatalf("expected a bundled product, got %+v", resolution)
	}
	if resolution.Source != SourceMock {
		t.Fatalf("Source = %q, want %q", resolution.Source, SourceMock)
	}
}

func TestResolveOneSimilarDegradesWithoutFailingResolution(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/landing/students/products/p-1" {
			_ = json.NewEncoder(w).Encode(detailPayload("p-1"))
			return
		}
		http.Error(w, "down", http.StatusBadGateway)
	}))

	resolution := r.ResolveOne(context.Background(), "p-1")

	if resolution.Source != SourceDetailAPI {
		t.Fatalf("Source = %q, want %q", resolution.Source, SourceDetailAPI)
	}
	// Similar products came from the bundle, all laptops other than p-1.
	for _, similar := range resolution.Similar {
		if similar.DeviceType != catalog.DeviceLaptop {
			t.Fatalf("similar product %q has device type %q", similar.ID, similar.DeviceType)
		}
	}
}

func TestResolveManyPrefersListSource(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(listPayload())
	}))

	resolution := r.ResolveMany(context.Background())

	if resolution.Source != SourceListAPI {
		t.Fatalf("Source = %q, want %q", resolution.Source, SourceListAPI)
	}
	if len(resolution.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(resolution.Products))
	}
}

func TestResolveManyFallsBackToBundledData(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))

	resolution := r.ResolveMany(context.Background())

	if resolution.Source != SourceMock {
		t.Fatalf("Source = %q, want %q", resolution.Source, SourceMock)
	}
	if len(resolution.Products) == 0 {
		t.Fatal("expected bundled products")
	}
}

func TestResolveManyBackfillsMissingQuota(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(listPayload())
	}))

	resolution := r.ResolveMany(context.Background())

	for _, product := range resolution.Products {
		if product.MonthlyPrice <= 0 {
			t.Fatalf("product %q has no per-period price", product.ID)
		}
	}

	// Upstream installment figures are trusted as-is.
	if p, ok := findProduct(resolution.Products, "p-1"); !ok || p.MonthlyPrice != 92 {
		t.Fatalf("expected upstream monthly price 92 for p-1, got %+v", p)
	}
}
