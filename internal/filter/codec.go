package filter

// Query-string codec for State. One key per dimension, comma-joined sets with
// percent-escaped elements, "true"/"false" for tri-state booleans. Parsing is
// total: invalid tokens are dropped and unknown keys ignored, so the worst
// case is fewer constraints than intended. Serialization omits defaults, which
// keeps shared URLs minimal.

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	keyDeviceType      = "deviceType"
	keyBrand           = "brand"
	keyUsage           = "usage"
	keyQuotaMin        = "quotaMin"
	keyQuotaMax        = "quotaMax"
	keyRAM             = "ram"
	keyStorage         = "storage"
	keyGama            = "gama"
	keyGPU             = "gpu"
	keyStock           = "stock"
	keyCondition       = "condition"
	keyTag             = "tag"
	keyDisplaySize     = "displaySize"
	keyDisplayType     = "displayType"
	keyResolution      = "resolution"
	keyRefreshRate     = "refreshRate"
	keyTouch           = "touch"
	keyBacklitKeyboard = "backlitKeyboard"
	keyNumericKeypad   = "numpad"
	keyFingerprint     = "fingerprint"
	keyHasOS           = "os"
	keyRAMUpgradable   = "ramUpgradable"
	keyPort            = "port"
	keyMinUSBPorts     = "minUsbPorts"
	keySort            = "sort"
)

// ParseQuery builds a State from already-decoded query values. It never fails.
func ParseQuery(values url.Values) State {
	return State{
		DeviceTypes:     parseSet(values.Get(keyDeviceType)),
		Brands:          parseSet(values.Get(keyBrand)),
		UsageCategories: parseSet(values.Get(keyUsage)),
		QuotaMin:        parseFloat(values.Get(keyQuotaMin)),
		QuotaMax:        parseFloat(values.Get(keyQuotaMax)),
		RAMSizes:        parseIntSet(values.Get(keyRAM)),
		StorageSizes:    parseIntSet(values.Get(keyStorage)),
		GamaTiers:       parseSet(values.Get(keyGama)),
		GPUClasses:      parseSet(values.Get(keyGPU)),
		StockStatuses:   parseSet(values.Get(keyStock)),
		Conditions:      parseSet(values.Get(keyCondition)),
		Tags:            parseSet(values.Get(keyTag)),
		DisplaySizes:    parseFloatSet(values.Get(keyDisplaySize)),
		DisplayTypes:    parseSet(values.Get(keyDisplayType)),
		Resolutions:     parseSet(values.Get(keyResolution)),
		RefreshRates:    parseIntSet(values.Get(keyRefreshRate)),
		TouchScreen:     parseTriState(values.Get(keyTouch)),
		BacklitKeyboard: parseTriState(values.Get(keyBacklitKeyboard)),
		NumericKeypad:   parseTriState(values.Get(keyNumericKeypad)),
		Fingerprint:     parseTriState(values.Get(keyFingerprint)),
		HasOS:           parseTriState(values.Get(keyHasOS)),
		RAMUpgradable:   parseTriState(values.Get(keyRAMUpgradable)),
		Ports:           parseSet(values.Get(keyPort)),
		MinUSBPorts:     parseInt(values.Get(keyMinUSBPorts)),
	}
}

// ParseSortQuery extracts the sort key from query values.
func ParseSortQuery(values url.Values) Sort {
	return ParseSort(values.Get(keySort))
}

// EncodeQuery is the inverse of ParseQuery. Keys whose value equals the
// dimension default are omitted, so encode(parse(q)) is idempotent rather
// than identity-preserving of superfluous defaults.
func EncodeQuery(s State, sort Sort) url.Values {
	values := url.Values{}

	setSet(values, keyDeviceType, s.DeviceTypes)
	setSet(values, keyBrand, s.Brands)
	setSet(values, keyUsage, s.UsageCategories)
	setFloat(values, keyQuotaMin, s.QuotaMin)
	setFloat(values, keyQuotaMax, s.QuotaMax)
	setIntSet(values, keyRAM, s.RAMSizes)
	setIntSet(values, keyStorage, s.StorageSizes)
	setSet(values, keyGama, s.GamaTiers)
	setSet(values, keyGPU, s.GPUClasses)
	setSet(values, keyStock, s.StockStatuses)
	setSet(values, keyCondition, s.Conditions)
	setSet(values, keyTag, s.Tags)
	setFloatSet(values, keyDisplaySize, s.DisplaySizes)
	setSet(values, keyDisplayType, s.DisplayTypes)
	setSet(values, keyResolution, s.Resolutions)
	setIntSet(values, keyRefreshRate, s.RefreshRates)
	setTriState(values, keyTouch, s.TouchScreen)
	setTriState(values, keyBacklitKeyboard, s.BacklitKeyboard)
	setTriState(values, keyNumericKeypad, s.NumericKeypad)
	setTriState(values, keyFingerprint, s.Fingerprint)
	setTriState(values, keyHasOS, s.HasOS)
	setTriState(values, keyRAMUpgradable, s.RAMUpgradable)
	setSet(values, keyPort, s.Ports)
	if s.MinUSBPorts > 0 {
		values.Set(keyMinUSBPorts, strconv.Itoa(s.MinUSBPorts))
	}
	if sort != "" && sort != SortRecommended {
		values.Set(keySort, string(sort))
	}

	return values
}

// parseSet splits a comma-joined set. Elements are percent-escaped on encode
// so literal commas inside values survive sharing.
func parseSet(raw string) []string {
	if raw == "" {
		return nil
	}

	var set []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if unescaped, err := url.QueryUnescape(token); err == nil {
			token = unescaped
		}
		set = append(set, token)
	}
	return set
}

func parseIntSet(raw string) []int {
	var set []int
	for _, token := range parseSet(raw) {
		if parsed, err := strconv.Atoi(token); err == nil {
			set = append(set, parsed)
		}
	}
	return set
}

func parseFloatSet(raw string) []float64 {
	var set []float64
	for _, token := range parseSet(raw) {
		if parsed, err := strconv.ParseFloat(token, 64); err == nil {
			set = append(set, parsed)
		}
	}
	return set
}

func parseInt(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func parseFloat(raw string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func parseTriState(raw string) *bool {
	switch raw {
	case "true":
		value := true
		return &value
	case "false":
		value := false
		return &value
	default:
		return nil
	}
}

func setSet(values url.Values, key string, set []string) {
	if len(set) == 0 {
		return
	}
	escaped := make([]string, 0, len(set))
	for _, element := range set {
		escaped = append(escaped, url.QueryEscape(element))
	}
	values.Set(key, strings.Join(escaped, ","))
}

func setIntSet(values url.Values, key string, set []int) {
	if len(set) == 0 {
		return
	}
	tokens := make([]string, 0, len(set))
	for _, element := range set {
		tokens = append(tokens, strconv.Itoa(element))
	}
	values.Set(key, strings.Join(tokens, ","))
}

func setFloatSet(values url.Values, key string, set []float64) {
	if len(set) == 0 {
		return
	}
	tokens := make([]string, 0, len(set))
	for _, element := range set {
		tokens = append(tokens, formatFloat(element))
	}
	values.Set(key, strings.Join(tokens, ","))
}

func setFloat(values url.Values, key string, value float64) {
	if value > 0 {
		values.Set(key, formatFloat(value))
	}
}

func setTriState(values url.Values, key string, value *bool) {
	if value == nil {
		return
	}
	values.Set(key, strconv.FormatBool(*value))
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
