package filter

import (
	"testing"
	"time"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
)

func testEngine() *Engine {
	return NewEngine(pricing.NewEngine(), 24, 0)
}

func fixtureProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:           "p-1",
			Name:         "Aurora Book 14",
			Brand:        "Aurora",
			Price:        1899,
			MonthlyPrice: 92,
			DeviceType:   catalog.DeviceLaptop,
			Gama:         catalog.GamaStudent,
			Condition:    catalog.ConditionNew,
			Stock:        catalog.StockAvailable,
			Tags:         []string{"bestseller"},
			Popularity:   87,
			ReleasedAt:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			Specs: catalog.Specs{
				RAMGB: 16, StorageGB: 512, GPUClass: "integrated",
				DisplayInches: 14, RefreshRateHz: 60,
				BacklitKeyboard: true, Fingerprint: true,
				OS: "Windows 11", Ports: []string{"usb-a", "usb-c", "hdmi"}, USBPortCount: 3,
			},
		},
		{
			ID:           "p-2",
			Name:         "Vertex Gamer 15",
			Brand:        "Vertex",
			Price:        5299,
			MonthlyPrice: 255,
			DeviceType:   catalog.DeviceLaptop,
			Gama:         catalog.GamaGaming,
			Condition:    catalog.ConditionNew,
			Stock:        catalog.StockLow,
			Tags:         []string{"new-arrival"},
			Popularity:   93,
			ReleasedAt:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Specs: catalog.Specs{
				RAMGB: 32, StorageGB: 1024, GPUClass: "dedicated",
				DisplayInches: 15.6, RefreshRateHz: 165,
				BacklitKeyboard: true, NumericKeypad: true,
				OS: "Windows 11", Ports: []string{"usb-a", "usb-c", "hdmi", "ethernet"}, USBPortCount: 4,
			},
		},
		{
			ID:           "p-3",
			Name:         "Slate Pad 11",
			Brand:        "Slate",
			Price:        1349,
			MonthlyPrice: 66,
			DeviceType:   catalog.DeviceTablet,
			Gama:         catalog.GamaStudent,
			Condition:    catalog.ConditionNew,
			Stock:        catalog.StockAvailable,
			Popularity:   74,
			ReleasedAt:   time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			Specs: catalog.Specs{
				RAMGB: 8, StorageGB: 128, GPUClass: "integrated",
				DisplayInches: 11, RefreshRateHz: 120, TouchScreen: true, Fingerprint: true,
				OS: "Android 15", Ports: []string{"usb-c"}, USBPortCount: 1,
			},
		},
		{
			ID:           "p-4",
			Name:         "Nimbus Air 13",
			Brand:        "Nimbus",
			Price:        999,
			MonthlyPrice: 49,
			DeviceType:   catalog.DeviceLaptop,
			Gama:         catalog.GamaEconomy,
			Condition:    catalog.ConditionRefurbished,
			Stock:        catalog.StockAvailable,
			Tags:         []string{"deal"},
			Popularity:   61,
			ReleasedAt:   time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			Specs: catalog.Specs{
				RAMGB: 8, StorageGB: 256, GPUClass: "integrated",
				DisplayInches: 13.3, RefreshRateHz: 60,
				OS: "Windows 11", Ports: []string{"usb-a", "usb-c"}, USBPortCount: 2,
			},
		},
	}
}

func idsOf(products []catalog.Product) []string {
	ids := make([]string, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got []catalog.Product, want ...string) {
	t.Helper()
	gotIDs := idsOf(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("ids = %v, want %v", gotIDs, want)
		}
	}
}

func TestApplyDefaultStateKeepsMembership(t *testing.T) {
	t.Parallel()

	products := fixtureProducts()
	result := testEngine().Apply(products, NewState(), SortRecommended)

	assertIDs(t, result, "p-1", "p-2", "p-3", "p-4")
}

func TestApplyDimensions(t *testing.T) {
	t.Parallel()

	touch := true
	noTouch := false

	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{
			name:  "or within brand set",
			state: State{Brands: []string{"Aurora", "Slate"}},
			want:  []string{"p-1", "p-3"},
		},
		{
			name:  "and across dimensions",
			state: State{Brands: []string{"Aurora", "Slate"}, DeviceTypes: []string{"laptop"}},
			want:  []string{"p-1"},
		},
		{
			name:  "quota range inclusive bounds",
			state: State{QuotaMin: 49, QuotaMax: 92},
			want:  []string{"p-1", "p-3", "p-4"},
		},
		{
			name:  "tri-state true",
			state: State{TouchScreen: &touch},
			want:  []string{"p-3"},
		},
		{
			name:  "tri-state false",
			state: State{TouchScreen: &noTouch},
			want:  []string{"p-1", "p-2", "p-4"},
		},
		{
			name:  "port presence requires all selected ports",
			state: State{Ports: []string{"usb-c", "hdmi"}},
			want:  []string{"p-1", "p-2"},
		},
		{
			name:  "minimum usb ports",
			state: State{MinUSBPorts: 3},
			want:  []string{"p-1", "p-2"},
		},
		{
			name:  "condition set",
			state: State{Conditions: []string{"refurbished"}},
			want:  []string{"p-4"},
		},
		{
			name:  "tag intersection",
			state: State{Tags: []string{"deal", "new-arrival"}},
			want:  []string{"p-2", "p-4"},
		},
	}

	engine := testEngine()
	products := fixtureProducts()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assertIDs(t, engine.Apply(products, tt.state, SortRecommended), tt.want...)
		})
	}
}

func TestApplySortOrders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sort Sort
		want []string
	}{
		{name: "price ascending", sort: SortPriceAsc, want: []string{"p-4", "p-3", "p-1", "p-2"}},
		{name: "price descending", sort: SortPriceDesc, want: []string{"p-2", "p-1", "p-3", "p-4"}},
		{name: "newest first", sort: SortNewest, want: []string{"p-2", "p-1", "p-3", "p-4"}},
		{name: "quota ascending", sort: SortQuotaAsc, want: []string{"p-4", "p-3", "p-1", "p-2"}},
		{name: "popularity", sort: SortPopularity, want: []string{"p-2", "p-1", "p-3", "p-4"}},
	}

	engine := testEngine()
	products := fixtureProducts()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assertIDs(t, engine.Apply(products, NewState(), tt.sort), tt.want...)
		})
	}
}

func TestApplySortIsStable(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{ID: "a", Price: 100, MonthlyPrice: 10},
		{ID: "b", Price: 100, MonthlyPrice: 10},
		{ID: "c", Price: 100, MonthlyPrice: 10},
	}

	assertIDs(t, testEngine().Apply(products, NewState(), SortPriceAsc), "a", "b", "c")
}

func TestOptionCountsExcludeOwnDimension(t *testing.T) {
	t.Parallel()

	engine := testEngine()
	products := fixtureProducts()

	counts := engine.OptionCounts(products, State{Brands: []string{"Aurora"}})

	// Brand counts ignore the brand constraint itself.
	if counts.Brands["Aurora"] != 1 || counts.Brands["Vertex"] != 1 || counts.Brands["Slate"] != 1 || counts.Brands["Nimbus"] != 1 {
		t.Fatalf("unexpected brand counts: %v", counts.Brands)
	}

	// Other dimensions are counted against the Aurora-filtered set.
	if counts.DeviceTypes["laptop"] != 1 || counts.DeviceTypes["tablet"] != 0 {
		t.Fatalf("unexpected device type counts: %v", counts.DeviceTypes)
	}
	if counts.RAMSizes[16] != 1 || counts.RAMSizes[32] != 0 {
		t.Fatalf("unexpected ram counts: %v", counts.RAMSizes)
	}
}

func TestOptionCountsDefaultStateCountsEverything(t *testing.T) {
	t.Parallel()

	counts := testEngine().OptionCounts(fixtureProducts(), NewState())

	if counts.DeviceTypes["laptop"] != 3 || counts.DeviceTypes["tablet"] != 1 {
		t.Fatalf("unexpected device type counts: %v", counts.DeviceTypes)
	}
	if counts.GamaTiers["student"] != 2 || counts.GamaTiers["gaming"] != 1 || counts.GamaTiers["economy"] != 1 {
		t.Fatalf("unexpected gama counts: %v", counts.GamaTiers)
	}
	if counts.Conditions["refurbished"] != 1 || counts.Conditions["new"] != 3 {
		t.Fatalf("unexpected condition counts: %v", counts.Conditions)
	}
}
