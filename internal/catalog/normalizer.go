package catalog

// Upstream endpoints speak two dialects: the detail endpoint nests pricing and
// lists specs as {code, value} pairs, the list endpoint is flat with a spec
// dictionary. Both converge on Product here; nothing outside this file may
// branch on upstream shape.

import (
	"strconv"
	"strings"
	"time"
)

type APIBrand struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logo_url,omitempty"`
}

type APISpecEntry struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type APIImage struct {
	URL  string `json:"url"`
	Alt  string `json:"alt,omitempty"`
	Type string `json:"type,omitempty"`
}

type APIVariant struct {
	ID       string `json:"id"`
	Color    string `json:"color,omitempty"`
	ColorHex string `json:"color_hex,omitempty"`
}

type APIPricingHook struct {
	MonthlyPrice float64 `json:"monthly_price"`
}

type APIPricing struct {
	ListPrice       float64        `json:"list_price"`
	FinalPrice      float64        `json:"final_price"`
	DiscountPercent float64        `json:"discount_percent"`
	Hook            APIPricingHook `json:"hook"`
}

// APIDetailProduct is the fully-detailed record served by the landing detail endpoint.
type APIDetailProduct struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Thumbnail       string         `json:"thumbnail_url"`
	DeviceType      string         `json:"device_type"`
	Condition       string         `json:"condition"`
	StockStatus     string         `json:"stock_status"`
	UsageCategories []string       `json:"usage_categories"`
	Tags            []string       `json:"tags"`
	Popularity      int            `json:"popularity"`
	ReleasedAt      time.Time      `json:"released_at"`
	Pricing         APIPricing     `json:"pricing"`
	Specs           []APISpecEntry `json:"specs"`
	Images          []APIImage     `json:"images"`
	Variants        []APIVariant   `json:"variants"`
	Brand           *APIBrand      `json:"brand,omitempty"`
}

// APIListItem is the flatter per-item shape of the paginated list endpoint.
type APIListItem struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	ShortName       string            `json:"short_name"`
	BrandName       string            `json:"brand_name"`
	Thumbnail       string            `json:"thumbnail_url"`
	Price           float64           `json:"price"`
	OriginalPrice   float64           `json:"original_price"`
	DiscountPercent float64           `json:"discount_percent"`
	MonthlyPrice    float64           `json:"monthly_price"`
	DeviceType      string            `json:"device_type"`
	Condition       string            `json:"condition"`
	StockStatus     string            `json:"stock_status"`
	UsageCategories []string          `json:"usage_categories"`
	Tags            []string          `json:"tags"`
	Popularity      int               `json:"popularity"`
	ReleasedAt      time.Time         `json:"released_at"`
	Specs           map[string]string `json:"specs"`
}

// FromDetail maps the detail dialect onto the canonical Product.
func FromDetail(api APIDetailProduct) Product {
	price := api.Pricing.FinalPrice
	if price == 0 {
		price = api.Pricing.ListPrice
	}

	product := Product{
		ID:              api.ID,
		Slug:            api.Slug,
		Name:            api.Name,
		ShortName:       api.ShortName,
		Thumbnail:       api.Thumbnail,
		Price:           price,
		OriginalPrice:   api.Pricing.ListPrice,
		DiscountPercent: api.Pricing.DiscountPercent,
		MonthlyPrice:    api.Pricing.Hook.MonthlyPrice,
		DeviceType:      DeviceType(api.DeviceType),
		Gama:            GamaFor(price),
		Condition:       normalizeCondition(api.Condition),
		Stock:           normalizeStock(api.StockStatus),
		UsageCategories: api.UsageCategories,
		Tags:            api.Tags,
		Popularity:      api.Popularity,
		ReleasedAt:      api.ReleasedAt,
		Specs:           specsFromEntries(api.Specs),
	}

	if api.Brand != nil {
		product.Brand = api.Brand.Name
	}
	for _, image := range api.Images {
		product.Images = append(product.Images, Image(image))
		if product.Thumbnail == "" {
			product.Thumbnail = image.URL
		}
	}
	for _, variant := range api.Variants {
		if variant.Color == "" {
			continue
		}
		product.Colors = append(product.Colors, Color{
			ID:   variant.ID,
			Name: variant.Color,
			Hex:  variant.ColorHex,
		})
	}

	return product
}

// FromListItem maps the list dialect onto the canonical Product.
func FromListItem(api APIListItem) Product {
	product := Product{
		ID:              api.ID,
		Slug:            api.Slug,
		Name:            api.Name,
		ShortName:       api.ShortName,
		Brand:           api.BrandName,
		Thumbnail:       api.Thumbnail,
		Price:           api.Price,
		OriginalPrice:   api.OriginalPrice,
		DiscountPercent: api.DiscountPercent,
		MonthlyPrice:    api.MonthlyPrice,
		DeviceType:      DeviceType(api.DeviceType),
		Gama:            GamaFor(api.Price),
		Condition:       normalizeCondition(api.Condition),
		Stock:           normalizeStock(api.StockStatus),
		UsageCategories: api.UsageCategories,
		Tags:            api.Tags,
		Popularity:      api.Popularity,
		ReleasedAt:      api.ReleasedAt,
		Specs:           specsFromDict(api.Specs),
	}
	if api.Thumbnail != "" {
		product.Images = []Image{{URL: api.Thumbnail, Type: "thumbnail"}}
	}
	return product
}

func specsFromEntries(entries []APISpecEntry) Specs {
	var specs Specs
	for _, entry := range entries {
		applySpec(&specs, entry.Code, entry.Value)
	}
	return specs
}

func specsFromDict(dict map[string]string) Specs {
	var specs Specs
	for code, value := range dict {
		applySpec(&specs, code, value)
	}
	return specs
}

// applySpec maps one attribute code onto the fixed spec shape. Unknown codes
// are ignored so new upstream attributes cannot break normalization.
func applySpec(specs *Specs, code, value string) {
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(code)) {
	case "processor", "cpu":
		specs.Processor = value
	case "gpu", "graphics":
		specs.GPU = value
	case "gpu_class":
		specs.GPUClass = strings.ToLower(value)
	case "ram_gb", "ram":
		specs.RAMGB = parseIntSpec(value)
	case "ram_upgradable":
		specs.RAMUpgradable = parseBoolSpec(value)
	case "storage_gb", "storage":
		specs.StorageGB = parseIntSpec(value)
	case "storage_type":
		specs.StorageType = strings.ToUpper(value)
	case "display_inches", "display_size":
		specs.DisplayInches = parseFloatSpec(value)
	case "display_type":
		specs.DisplayType = value
	case "resolution", "display_resolution":
		specs.Resolution = value
	case "refresh_rate_hz", "refresh_rate":
		specs.RefreshRateHz = parseIntSpec(value)
	case "touch_screen", "touchscreen":
		specs.TouchScreen = parseBoolSpec(value)
	case "backlit_keyboard":
		specs.BacklitKeyboard = parseBoolSpec(value)
	case "numeric_keypad", "numpad":
		specs.NumericKeypad = parseBoolSpec(value)
	case "fingerprint", "fingerprint_reader":
		specs.Fingerprint = parseBoolSpec(value)
	case "os", "operating_system":
		specs.OS = value
	case "ports":
		specs.Ports = splitPorts(value)
	case "usb_ports", "usb_port_count":
		specs.USBPortCount = parseIntSpec(value)
	}
}

func splitPorts(value string) []string {
	var ports []string
	for _, port := range strings.Split(value, ",") {
		port = strings.ToLower(strings.TrimSpace(port))
		if port != "" {
			ports = append(ports, port)
		}
	}
	return ports
}

func parseIntSpec(value string) int {
	value = numericPrefix(value)
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func parseFloatSpec(value string) float64 {
	value = numericPrefix(value)
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseBoolSpec(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "si", "sí", "1":
		return true
	default:
		return false
	}
}

// numericPrefix strips a trailing unit, e.g. "16 GB" -> "16" or "15.6\"" -> "15.6".
func numericPrefix(value string) string {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) {
		c := value[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	return value[:end]
}

func normalizeCondition(value string) Condition {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "refurbished", "renewed", "reacondicionado":
		return ConditionRefurbished
	default:
		return ConditionNew
	}
}

func normalizeStock(value string) StockStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low_stock", "low":
		return StockLow
	case "out_of_stock", "sold_out":
		return StockOut
	case "preorder":
		return StockPreorder
	default:
		return StockAvailable
	}
}
