package shop

import (
	"context"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
)

// DemoCatalog is the catalog loaded by Seed. Ids are fixed so that they can
// be typed at the CLI.
var DemoCatalog = []models.Product{
	{ID: "road-aero-2023", Name: "Aero SL", Brand: "Veloce", Model: "Aero", Year: 2023, Price: 2899, Type: "Road",
		Description: "Carbon aero frame with electronic shifting.", Images: []string{"/img/aero-sl.jpg"}},
	{ID: "road-endurance-2022", Name: "Endurance 105", Brand: "Veloce", Model: "Endurance", Year: 2022, Price: 1749, Type: "Road",
		Description: "Relaxed geometry for long days in the saddle."},
	{ID: "mtb-trail-2024", Name: "Trail 29", Brand: "Ridgeback", Model: "Trail", Year: 2024, Price: 2199, Type: "Mountain",
		Description: "140 mm full suspension trail bike.", Images: []string{"/img/trail-29.jpg"}},
	{ID: "mtb-hardtail-2023", Name: "Hardtail XC", Brand: "Ridgeback", Model: "XC", Year: 2023, Price: 1199, Type: "Mountain"},
	{ID: "hybrid-city-2024", Name: "City Glide", Brand: "Urbano", Model: "Glide", Year: 2024, Price: 649, Type: "Hybrid",
		Description: "Fenders, rack and dynamo lights included."},
	{ID: "hybrid-fitness-2022", Name: "Fitness Flat", Brand: "Urbano", Model: "Fitness", Year: 2022, Price: 579, Type: "Hybrid"},
	{ID: "kids-sprout-2024", Name: "Sprout 20", Brand: "Tiny Wheels", Model: "Sprout", Year: 2024, Price: 299, Type: "Kids"},
	{ID: "ebike-commuter-2024", Name: "Volt Commuter", Brand: "Urbano", Model: "Volt", Year: 2024, Price: 3199, Type: "Electric",
		Description: "Mid-drive motor, 500 Wh battery."},
}

// Seed loads DemoCatalog into s.
func Seed(ctx context.Context, s *Shop) error {
	for _, p := range DemoCatalog {
		if _, err := s.AddProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
