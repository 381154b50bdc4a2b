package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/client/stores"
)

// parseFilter turns shop arguments into a catalog filter. key=value words
// set facets; all other words form the name query.
func parseFilter(args []string) (stores.Filter, error) {
	var (
		f     stores.Filter
		query []string
	)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			query = append(query, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "brand":
			f.Brands = append(f.Brands, value)
		case "model":
			f.Models = append(f.Models, value)
		case "year":
			y, err := strconv.Atoi(value)
			if err != nil {
				return stores.Filter{}, fmt.Errorf("year must be a number: %q", value)
			}
			f.Years = append(f.Years, y)
		case "max":
			m, err := strconv.ParseFloat(value, 64)
			if err != nil || m <= 0 {
				return stores.Filter{}, fmt.Errorf("max must be a positive price: %q", value)
			}
			f.MaxPrice = m
		default:
			return stores.Filter{}, fmt.Errorf("unknown filter %q", key)
		}
	}
	f.Query = strings.Join(query, " ")
	return f, nil
}

// shop refreshes the catalog and lists the products matching the filter.
func (s *Shell) shop(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}
	if _, err := s.app.Catalog.FetchAll(ctx); err != nil {
		return err
	}

	products := s.app.Catalog.Filter(f)
	if len(products) == 0 {
		s.println("No products match")
	}
	wish := s.app.Wishlist.Snapshot()
	for _, p := range products {
		mark := " "
		if wish.Contains(p.ID) {
			mark = "*"
		}
		s.printf("%s %-22s %-24s %-10s %4d %10s\n", mark, p.ID, p.Name, p.Brand, p.Year, formatPrice(p.Price))
	}

	facets := s.app.Catalog.Facets()
	s.printf("Brands: %s | Years: %s | Up to %s\n",
		strings.Join(facets.Brands, ", "), joinInts(facets.Years), formatPrice(facets.MaxPrice))
	return nil
}

func (s *Shell) product(ctx context.Context, args []string) error {
	p, err := s.app.Catalog.FetchProduct(ctx, args[0])
	if err != nil {
		return err
	}

	s.printf("%s (%s %s, %d)\n", p.Name, p.Brand, p.Model, p.Year)
	s.printf("Type: %s  Price: %s  Rating: %.1f (%d reviews)\n", p.Type, formatPrice(p.Price), p.AverageRating, len(p.Reviews))
	if p.Description != "" {
		s.println(p.Description)
	}
	for _, r := range p.Reviews {
		s.printf("  %s %s: %s\n", stars(r.Rating), r.ReviewerName, r.Review)
	}

	if similar := s.app.Catalog.Similar(p, 3); len(similar) > 0 {
		names := make([]string, len(similar))
		for i, o := range similar {
			names[i] = o.Name + " [" + o.ID + "]"
		}
		s.println("Similar:", strings.Join(names, ", "))
	}
	return nil
}

func (s *Shell) review(ctx context.Context, args []string) error {
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return stores.ErrInvalidReview
	}

	p, err := s.app.Catalog.SubmitReview(ctx, args[0], models.ReviewInput{
		Rating: rating,
		Review: strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	s.printf("Thanks! %s is now rated %.1f\n", p.Name, p.AverageRating)
	return nil
}

func (s *Shell) wish(ctx context.Context, _ []string) error {
	items, err := s.app.Wishlist.FetchAll(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.println("Your wishlist is empty")
	}
	for _, it := range items {
		s.printf("%-22s %-24s %10s\n", it.Product.ID, it.Product.Label(), formatPrice(it.Product.Price()))
	}
	return nil
}

func (s *Shell) wishAdd(ctx context.Context, args []string) error {
	if _, err := s.app.Wishlist.AddItem(ctx, args[0]); err != nil {
		return err
	}
	s.println("Saved to wishlist")
	return nil
}

func (s *Shell) wishRemove(ctx context.Context, args []string) error {
	if err := s.app.Wishlist.RemoveItem(ctx, args[0]); err != nil {
		return err
	}
	s.println("Removed from wishlist")
	return nil
}
