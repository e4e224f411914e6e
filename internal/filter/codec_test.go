package filter

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseQueryScenario(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("brand=acme,zenith&ram=8,16&touch=true")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	state := ParseQuery(values)

	if !reflect.DeepEqual(state.Brands, []string{"acme", "zenith"}) {
		t.Fatalf("Brands = %v, want [acme zenith]", state.Brands)
	}
	if !reflect.DeepEqual(state.RAMSizes, []int{8, 16}) {
		t.Fatalf("RAMSizes = %v, want [8 16]", state.RAMSizes)
	}
	if state.TouchScreen == nil || !*state.TouchScreen {
		t.Fatalf("TouchScreen = %v, want true", state.TouchScreen)
	}

	// Everything else stays at its default.
	state.Brands = nil
	state.RAMSizes = nil
	state.TouchScreen = nil
	if !state.IsDefault() {
		t.Fatalf("unexpected non-default dimensions: %+v", state)
	}
}

func TestParseQueryDropsInvalidTokens(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"ram":         {"8,many,16"},
		"quotaMin":    {"abc"},
		"quotaMax":    {"-5"},
		"minUsbPorts": {"two"},
		"touch":       {"yes"}, // only literal true/false constrain
		"mystery":     {"42"},  // unknown keys ignored
	}

	state := ParseQuery(values)

	if !reflect.DeepEqual(state.RAMSizes, []int{8, 16}) {
		t.Fatalf("RAMSizes = %v, want [8 16]", state.RAMSizes)
	}
	if state.QuotaMin != 0 || state.QuotaMax != 0 || state.MinUSBPorts != 0 {
		t.Fatalf("invalid numerics should parse to defaults: %+v", state)
	}
	if state.TouchScreen != nil {
		t.Fatalf("TouchScreen = %v, want unconstrained", state.TouchScreen)
	}
}

func TestParseQueryEmptyIsDefault(t *testing.T) {
	t.Parallel()

	if state := ParseQuery(url.Values{}); !state.IsDefault() {
		t.Fatalf("empty query should parse to the default state: %+v", state)
	}
}

func TestEncodeQueryOmitsDefaults(t *testing.T) {
	t.Parallel()

	if encoded := EncodeQuery(NewState(), SortRecommended); len(encoded) != 0 {
		t.Fatalf("default state should encode to an empty query, got %v", encoded)
	}

	touch := true
	encoded := EncodeQuery(State{Brands: []string{"acme"}, TouchScreen: &touch}, SortPriceAsc)

	if got := encoded.Get("brand"); got != "acme" {
		t.Fatalf("brand = %q, want acme", got)
	}
	if got := encoded.Get("touch"); got != "true" {
		t.Fatalf("touch = %q, want true", got)
	}
	if got := encoded.Get("sort"); got != "price-asc" {
		t.Fatalf("sort = %q, want price-asc", got)
	}
	if len(encoded) != 3 {
		t.Fatalf("expected 3 keys, got %v", encoded)
	}
}

func TestQueryRoundTripPreservesNonDefaults(t *testing.T) {
	t.Parallel()

	touch := true
	fingerprint := false
	state := State{
		DeviceTypes:   []string{"laptop", "tablet"},
		Brands:        []string{"acme", "zenith"},
		QuotaMin:      50,
		QuotaMax:      250.5,
		RAMSizes:      []int{8, 16},
		StorageSizes:  []int{512},
		GamaTiers:     []string{"student"},
		Conditions:    []string{"new"},
		DisplaySizes:  []float64{14, 15.6},
		RefreshRates:  []int{120},
		TouchScreen:   &touch,
		Fingerprint:   &fingerprint,
		Ports:         []string{"usb-c", "hdmi"},
		MinUSBPorts:   2,
		UsageCategories: []string{
			"study",
			"gaming, esports", // literal comma survives the round trip
		},
	}

	reparsed := ParseQuery(EncodeQuery(state, SortNewest))

	if !reflect.DeepEqual(reparsed, state) {
		t.Fatalf("round trip diverged:\n got %+v\nwant %+v", reparsed, state)
	}
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  Sort
	}{
		{value: "price-asc", want: SortPriceAsc},
		{value: "price-desc", want: SortPriceDesc},
		{value: "newest", want: SortNewest},
		{value: "quota-asc", want: SortQuotaAsc},
		{value: "popularity", want: SortPopularity},
		{value: "recommended", want: SortRecommended},
		{value: "", want: SortRecommended},
		{value: "bogus", want: SortRecommended},
	}

	for _, tt := range tests {
		if got := ParseSort(tt.value); got != tt.want {
			t.Fatalf("ParseSort(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
