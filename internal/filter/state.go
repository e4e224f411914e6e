package filter

// Package filter owns the catalog's multi-dimensional filter/sort state and
// its query-string codec.

// State holds one value per filter dimension. The zero value means "no
// filters applied" for every dimension: empty sets, zero ranges, nil
// tri-state booleans.
type State struct {
	DeviceTypes     []string
	Brands          []string
	UsageCategories []string
	QuotaMin        float64
	QuotaMax        float64
	RAMSizes        []int
	StorageSizes    []int
	GamaTiers       []string
	GPUClasses      []string
	StockStatuses   []string
	Conditions      []string
	Tags            []string

	DisplaySizes    []float64
	DisplayTypes    []string
	Resolutions     []string
	RefreshRates    []int
	TouchScreen     *bool
	BacklitKeyboard *bool
	NumericKeypad   *bool
	Fingerprint     *bool
	HasOS           *bool
	RAMUpgradable   *bool
	Ports           []string
	MinUSBPorts     int
}

// NewState returns the "no filters applied" state.
func NewState() State {
	return State{}
}

// IsDefault reports whether no dimension constrains anything.
func (s State) IsDefault() bool {
	return len(s.DeviceTypes) == 0 &&
		len(s.Brands) == 0 &&
		len(s.UsageCategories) == 0 &&
		s.QuotaMin == 0 &&
		s.QuotaMax == 0 &&
		len(s.RAMSizes) == 0 &&
		len(s.StorageSizes) == 0 &&
		len(s.GamaTiers) == 0 &&
		len(s.GPUClasses) == 0 &&
		len(s.StockStatuses) == 0 &&
		len(s.Conditions) == 0 &&
		len(s.Tags) == 0 &&
		len(s.DisplaySizes) == 0 &&
		len(s.DisplayTypes) == 0 &&
		len(s.Resolutions) == 0 &&
		len(s.RefreshRates) == 0 &&
		s.TouchScreen == nil &&
		s.BacklitKeyboard == nil &&
		s.NumericKeypad == nil &&
		s.Fingerprint == nil &&
		s.HasOS == nil &&
		s.RAMUpgradable == nil &&
		len(s.Ports) == 0 &&
		s.MinUSBPorts == 0
}

// Sort identifies one of the fixed catalog orderings.
type Sort string

const (
	SortRecommended Sort = "recommended"
	SortPriceAsc    Sort = "price-asc"
	SortPriceDesc   Sort = "price-desc"
	SortNewest      Sort = "newest"
	SortQuotaAsc    Sort = "quota-asc"
	SortPopularity  Sort = "popularity"
)

// ParseSort maps a query value to a known sort, defaulting to recommended.
func ParseSort(value string) Sort {
	switch Sort(value) {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortQuotaAsc, SortPopularity:
		return Sort(value)
	default:
		return SortRecommended
	}
}
