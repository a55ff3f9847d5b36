package catalog

import "github.com/shopspring/decimal"

func defaultProducts() []Product {
	return []Product{
		{ID: "1", Name: "Oud Noir", Family: "Woody", Price: decimal.NewFromInt(210), Rating: 5, InStock: true,
			ImageURL: "https://images.unsplash.com/photo-1547887538-e3a2f32cb1cc?q=80&w=800&auto=format&fit=crop"},
		{ID: "2", Name: "Rose Water", Family: "Floral", Price: decimal.NewFromInt(185), Rating: 4, InStock: true,
			ImageURL: "https://images.unsplash.com/photo-1594035910387-fea47794261f?q=80&w=800&auto=format&fit=crop"},
		{ID: "3", Name: "Sand & Cedar", Family: "Woody", Price: decimal.NewFromInt(195), Rating: 5, InStock: true,
			ImageURL: "https://images.unsplash.com/photo-1523293182086-7651a899d37f?q=80&w=800&auto=format&fit=crop"},
		{ID: "4", Name: "Citrus Bloom", Family: "Fresh", Price: decimal.NewFromInt(160), Rating: 4, InStock: true,
			ImageURL: "https://images.unsplash.com/photo-1592914610354-fd354ea45e48?q=80&w=800&auto=format&fit=crop"},
		{ID: "5", Name: "Midnight Jasmine", Family: "Floral", Price: decimal.NewFromInt(225), Rating: 5, InStock: true,
			ImageURL: "https://gallagherfragrances.com/cdn/shop/files/IMG_20211108_073607_428_efff03b4-c429-4eb9-8a00-f44a697a8e9c.jpg?v=1763482545"},
		{ID: "6", Name: "Velvet Moss", Family: "Earthwy", Price: decimal.NewFromInt(145), Rating: 4, InStock: true,
			ImageURL: "https://pbs.twimg.com/media/G69H8UMXMAAm9V9.jpg"},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultProducts())
	if err != nil {
		panic(err)
	}
	return c
}
