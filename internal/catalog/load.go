package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type fileProduct struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Brand    string `yaml:"brand"`
	Family   string `yaml:"family"`
	Price    string `yaml:"price"`
	ImageURL string `yaml:"image_url"`
	Rating   int    `yaml:"rating"`
	InStock  *bool  `yaml:"in_stock"`
}

type fileCatalog struct {
	Products []fileProduct `yaml:"products"`
}

// Load reads a catalog from a YAML file of the form
//
//	products:
//	  - id: "1"
//	    name: Oud Noir
//	    family: Woody
//	    price: 210
//
// An entry without in_stock is in stock.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var raw fileCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	products := make([]Product, 0, len(raw.Products))
	for i, fp := range raw.Products {
		price, err := decimal.NewFromString(fp.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d (%q): invalid price %q: %w", i, fp.Name, fp.Price, err)
		}
		inStock := true
		if fp.InStock != nil {
			inStock = *fp.InStock
		}
		products = append(products, Product{
			ID:       fp.ID,
			Name:     fp.Name,
			Brand:    fp.Brand,
			Family:   fp.Family,
			Price:    price,
			ImageURL: fp.ImageURL,
			Rating:   fp.Rating,
			InStock:  inStock,
		})
	}
	return New(products)
}

// LoadOrDefault loads path, or returns the built-in catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
