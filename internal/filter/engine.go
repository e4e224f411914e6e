package filter

import (
	"sort"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
)

// Engine filters and ranks resolved product collections. It owns no state of
// its own; State values are passed in per call.
type Engine struct {
	pricer         *pricing.Engine
	termMonths     int
	downPaymentPct float64
}

func NewEngine(pricer *pricing.Engine, termMonths int, downPaymentPct float64) *Engine {
	return &Engine{
		pricer:         pricer,
		termMonths:     termMonths,
		downPaymentPct: downPaymentPct,
	}
}

// Apply returns the products matching every non-default dimension of s, in
// the order given by sortKey. The input slice is never mutated.
func (e *Engine) Apply(products []catalog.Product, s State, sortKey Sort) []catalog.Product {
	matched := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		if e.matches(product, s) {
			matched = append(matched, product)
		}
	}
	e.sortProducts(matched, sortKey)
	return matched
}

// dimension identifies a filter dimension for the pre-this-dimension count
// computation.
type dimension int

const (
	dimNone dimension = iota
	dimDeviceType
	dimBrand
	dimRAM
	dimStorage
	dimGama
	dimGPU
	dimStock
	dimCondition
	dimTag
)

func (e *Engine) matches(p catalog.Product, s State) bool {
	return e.matchesExcept(p, s, dimNone)
}

// matchesExcept evaluates every dimension but the excluded one: AND across
// dimensions, OR within a set, inclusive range bounds, exact match for
// constrained tri-state booleans.
func (e *Engine) matchesExcept(p catalog.Product, s State, excluded dimension) bool {
	if excluded != dimDeviceType && !inSet(s.DeviceTypes, string(p.DeviceType)) {
		return false
	}
	if excluded != dimBrand && !inSet(s.Brands, p.Brand) {
		return false
	}
	if !anyInSet(s.UsageCategories, p.UsageCategories) {
		return false
	}
	if quota := e.quotaFor(p); (s.QuotaMin > 0 && quota < s.QuotaMin) || (s.QuotaMax > 0 && quota > s.QuotaMax) {
		return false
	}
	if excluded != dimRAM && !inIntSet(s.RAMSizes, p.Specs.RAMGB) {
		return false
	}
	if excluded != dimStorage && !inIntSet(s.StorageSizes, p.Specs.StorageGB) {
		return false
	}
	if excluded != dimGama && !inSet(s.GamaTiers, string(p.Gama)) {
		return false
	}
	if excluded != dimGPU && !inSet(s.GPUClasses, p.Specs.GPUClass) {
		return false
	}
	if excluded != dimStock && !inSet(s.StockStatuses, string(p.Stock)) {
		return false
	}
	if excluded != dimCondition && !inSet(s.Conditions, string(p.Condition)) {
		return false
	}
	if excluded != dimTag && !anyInSet(s.Tags, p.Tags) {
		return false
	}
	if !inFloatSet(s.DisplaySizes, p.Specs.DisplayInches) {
		return false
	}
	if !inSet(s.DisplayTypes, p.Specs.DisplayType) {
		return false
	}
	if !inSet(s.Resolutions, p.Specs.Resolution) {
		return false
	}
	if !inIntSet(s.RefreshRates, p.Specs.RefreshRateHz) {
		return false
	}
	if !matchesTriState(s.TouchScreen, p.Specs.TouchScreen) {
		return false
	}
	if !matchesTriState(s.BacklitKeyboard, p.Specs.BacklitKeyboard) {
		return false
	}
	if !matchesTriState(s.NumericKeypad, p.Specs.NumericKeypad) {
		return false
	}
	if !matchesTriState(s.Fingerprint, p.Specs.Fingerprint) {
		return false
	}
	if !matchesTriState(s.HasOS, p.Specs.OS != "") {
		return false
	}
	if !matchesTriState(s.RAMUpgradable, p.Specs.RAMUpgradable) {
		return false
	}
	for _, port := range s.Ports {
		if !p.HasPort(port) {
			return false
		}
	}
	if s.MinUSBPorts > 0 && p.Specs.USBPortCount < s.MinUSBPorts {
		return false
	}

	return true
}

// quotaFor uses the resolver-provided per-period price and recomputes only
// when a product somehow lacks one.
func (e *Engine) quotaFor(p catalog.Product) float64 {
	if p.MonthlyPrice > 0 {
		return p.MonthlyPrice
	}
	quote, err := e.pricer.ComputeInstallment(p.Price, e.termMonths, e.downPaymentPct)
	if err != nil {
		return 0
	}
	return quote.PeriodicPayment
}

func (e *Engine) sortProducts(products []catalog.Product, sortKey Sort) {
	var less func(a, b catalog.Product) bool

	switch sortKey {
	case SortPriceAsc:
		less = func(a, b catalog.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b catalog.Product) bool { return a.Price > b.Price }
	case SortNewest:
		less = func(a, b catalog.Product) bool { return a.ReleasedAt.After(b.ReleasedAt) }
	case SortQuotaAsc:
		less = func(a, b catalog.Product) bool { return e.quotaFor(a) < e.quotaFor(b) }
	case SortPopularity:
		less = func(a, b catalog.Product) bool { return a.Popularity > b.Popularity }
	default:
		// Recommended keeps the resolver's curated order.
		return
	}

	// Stable sort so ties keep input order.
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// Counts annotates filter options with live match counts.
type Counts struct {
	DeviceTypes   map[string]int `json:"deviceTypes"`
	Brands        map[string]int `json:"brands"`
	RAMSizes      map[int]int    `json:"ramSizes"`
	StorageSizes  map[int]int    `json:"storageSizes"`
	GamaTiers     map[string]int `json:"gamaTiers"`
	GPUClasses    map[string]int `json:"gpuClasses"`
	StockStatuses map[string]int `json:"stockStatuses"`
	Conditions    map[string]int `json:"conditions"`
	Tags          map[string]int `json:"tags"`
}

// OptionCounts computes, per option, how many products would match were that
// option additionally selected. Each dimension is counted against the set
// filtered by every other dimension, so selecting within a dimension never
// zeroes out its sibling options.
func (e *Engine) OptionCounts(products []catalog.Product, s State) Counts {
	counts := Counts{
		DeviceTypes:   make(map[string]int),
		Brands:        make(map[string]int),
		RAMSizes:      make(map[int]int),
		StorageSizes:  make(map[int]int),
		GamaTiers:     make(map[string]int),
		GPUClasses:    make(map[string]int),
		StockStatuses: make(map[string]int),
		Conditions:    make(map[string]int),
		Tags:          make(map[string]int),
	}

	for _, product := range products {
		if e.matchesExcept(product, s, dimDeviceType) {
			counts.DeviceTypes[string(product.DeviceType)]++
		}
		if e.matchesExcept(product, s, dimBrand) && product.Brand != "" {
			counts.Brands[product.Brand]++
		}
		if e.matchesExcept(product, s, dimRAM) && product.Specs.RAMGB > 0 {
			counts.RAMSizes[product.Specs.RAMGB]++
		}
		if e.matchesExcept(product, s, dimStorage) && product.Specs.StorageGB > 0 {
			counts.StorageSizes[product.Specs.StorageGB]++
		}
		if e.matchesExcept(product, s, dimGama) {
			counts.GamaTiers[string(product.Gama)]++
		}
		if e.matchesExcept(product, s, dimGPU) && product.Specs.GPUClass != "" {
			counts.GPUClasses[product.Specs.GPUClass]++
		}
		if e.matchesExcept(product, s, dimStock) {
			counts.StockStatuses[string(product.Stock)]++
		}
		if e.matchesExcept(product, s, dimCondition) {
			counts.Conditions[string(product.Condition)]++
		}
		if e.matchesExcept(product, s, dimTag) {
			for _, tag := range product.Tags {
				counts.Tags[tag]++
			}
		}
	}

	return counts
}

// inSet treats an empty set as "no constraint".
func inSet(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, candidate := range set {
		if candidate == value {
			return true
		}
	}
	return false
}

func inIntSet(set []int, value int) bool {
	if len(set) == 0 {
		return true
	}
	for _, candidate := range set {
		if candidate == value {
			return true
		}
	}
	return false
}

func inFloatSet(set []float64, value float64) bool {
	if len(set) == 0 {
		return true
	}
	for _, candidate := range set {
		if candidate == value {
			return true
		}
	}
	return false
}

// anyInSet passes when the selected set intersects the product's values.
func anyInSet(set []string, values []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, value := range values {
		for _, candidate := range set {
			if candidate == value {
				return true
			}
		}
	}
	return false
}

func matchesTriState(constraint *bool, value bool) bool {
	return constraint == nil || *constraint == value
}
