package catalog

// Package catalog defines the canonical product model shared by every data source.

import "time"

type DeviceType string

const (
	DeviceLaptop    DeviceType = "laptop"
	DeviceTablet    DeviceType = "tablet"
	DevicePhone     DeviceType = "phone"
	DeviceMonitor   DeviceType = "monitor"
	DeviceAccessory DeviceType = "accessory"
)

type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionRefurbished Condition = "refurbished"
)

type StockStatus string

const (
	StockAvailable StockStatus = "available"
	StockLow       StockStatus = "low_stock"
	StockOut       StockStatus = "out_of_stock"
	StockPreorder  StockStatus = "preorder"
)

type GamaTier string

const (
	GamaEconomy      GamaTier = "economy"
	GamaStudent      GamaTier = "student"
	GamaProfessional GamaTier = "professional"
	GamaCreative     GamaTier = "creative"
	GamaGaming       GamaTier = "gaming"
)

type Image struct {
	URL  string `json:"url" yaml:"url"`
	Alt  string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

type Color struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Hex    string   `json:"hex" yaml:"hex"`
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// Specs is the fixed specification shape every Product exposes regardless of
// which upstream dialect supplied the attributes.
type Specs struct {
	Processor       string   `json:"processor" yaml:"processor"`
	GPU             string   `json:"gpu" yaml:"gpu"`
	GPUClass        string   `json:"gpuClass" yaml:"gpu_class"`
	RAMGB           int      `json:"ramGb" yaml:"ram_gb"`
	RAMUpgradable   bool     `json:"ramUpgradable" yaml:"ram_upgradable"`
	StorageGB       int      `json:"storageGb" yaml:"storage_gb"`
	StorageType     string   `json:"storageType" yaml:"storage_type"`
	DisplayInches   float64  `json:"displayInches" yaml:"display_inches"`
	DisplayType     string   `json:"displayType" yaml:"display_type"`
	Resolution      string   `json:"resolution" yaml:"resolution"`
	RefreshRateHz   int      `json:"refreshRateHz" yaml:"refresh_rate_hz"`
	TouchScreen     bool     `json:"touchScreen" yaml:"touch_screen"`
	BacklitKeyboard bool     `json:"backlitKeyboard" yaml:"backlit_keyboard"`
	NumericKeypad   bool     `json:"numericKeypad" yaml:"numeric_keypad"`
	Fingerprint     bool     `json:"fingerprint" yaml:"fingerprint"`
	OS              string   `json:"os" yaml:"os"`
	Ports           []string `json:"ports" yaml:"ports"`
	USBPortCount    int      `json:"usbPortCount" yaml:"usb_port_count"`
}

// Product is the resolver-normalized record. Instances are immutable snapshots;
// callers never mutate them in place.
type Product struct {
	ID              string      `json:"id" yaml:"id"`
	Slug            string      `json:"slug" yaml:"slug"`
	Name            string      `json:"name" yaml:"name"`
	ShortName       string      `json:"shortName" yaml:"short_name"`
	Brand           string      `json:"brand" yaml:"brand"`
	Thumbnail       string      `json:"thumbnail" yaml:"thumbnail"`
	Images          []Image     `json:"images" yaml:"images"`
	Colors          []Color     `json:"colors,omitempty" yaml:"colors,omitempty"`
	Price           float64     `json:"price" yaml:"price"`
	OriginalPrice   float64     `json:"originalPrice,omitempty" yaml:"original_price,omitempty"`
	DiscountPercent float64     `json:"discountPercent,omitempty" yaml:"discount_percent,omitempty"`
	MonthlyPrice    float64     `json:"monthlyPrice" yaml:"monthly_price"`
	DeviceType      DeviceType  `json:"deviceType" yaml:"device_type"`
	Gama            GamaTier    `json:"gamaTier" yaml:"gama_tier"`
	Condition       Condition   `json:"condition" yaml:"condition"`
	Stock           StockStatus `json:"stockStatus" yaml:"stock_status"`
	UsageCategories []string    `json:"usageCategories,omitempty" yaml:"usage_categories,omitempty"`
	Tags            []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Popularity      int         `json:"popularity" yaml:"popularity"`
	ReleasedAt      time.Time   `json:"releasedAt" yaml:"released_at"`
	Specs           Specs       `json:"specs" yaml:"specs"`
}

// HasPort reports whether the product exposes the given port type.
func (p Product) HasPort(port string) bool {
	for _, candidate := range p.Specs.Ports {
		if candidate == port {
			return true
		}
	}
	return false
}

// GamaFor derives the price-band tier from the principal.
func GamaFor(price float64) GamaTier {
	switch {
	case price < 1200:
		return GamaEconomy
	case price < 2200:
		return GamaStudent
	case price < 3500:
		return GamaProfessional
	case price < 5000:
		return GamaCreative
	default:
		return GamaGaming
	}
}
