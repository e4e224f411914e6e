package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var staticCatalogYAML []byte

type staticCatalog struct {
	Version  string    `yaml:"version"`
	Products []Product `yaml:"products"`
}

var (
	staticOnce     sync.Once
	staticProducts []Product
	staticErr      error
)

// StaticProducts returns the bundled, pre-normalized fallback dataset. The
// dataset ships with the binary, so this is the one data source that cannot
// fail at runtime; a malformed bundle is a build defect and panics at first use.
func StaticProducts() []Product {
	staticOnce.Do(func() {
		var parsed staticCatalog
		if err := yaml.Unmarshal(staticCatalogYAML, &parsed); err != nil {
			staticErr = fmt.Errorf("failed to parse bundled catalog: %w", err)
			return
		}
		for i := range parsed.Products {
			if parsed.Products[i].Gama == "" {
				parsed.Products[i].Gama = GamaFor(parsed.Products[i].Price)
			}
		}
		staticProducts = parsed.Products
	})
	if staticErr != nil {
		panic(staticErr)
	}

	copied := make([]Product, len(staticProducts))
	copy(copied, staticProducts)
	return copied
}
